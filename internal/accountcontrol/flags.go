package accountcontrol

// userAccountControl flags.
// https://learn.microsoft.com/en-us/windows/win32/adschema/a-useraccountcontrol
const (
	Script                 = 0x00000001
	AccountDisabled        = 0x00000002
	HomeDirRequired        = 0x00000008
	Lockout                = 0x00000010
	PasswordNotRequired    = 0x00000020
	PasswordCantChange     = 0x00000040
	EncryptedTextPassword  = 0x00000080
	TempDuplicateAccount   = 0x00000100
	NormalAccount          = 0x00000200
	InterdomainTrust       = 0x00000800
	WorkstationTrust       = 0x00001000
	ServerTrust            = 0x00002000
	DontExpirePassword     = 0x00010000
	MNSLogonAccount        = 0x00020000
	SmartcardRequired      = 0x00040000
	TrustedForDelegation   = 0x00080000
	NotDelegated           = 0x00100000
	UseDESKeyOnly          = 0x00200000
	DontRequirePreauth     = 0x00400000
	PasswordExpired        = 0x00800000
	TrustedToAuthForDelegn = 0x01000000
)

var flagNames = []struct {
	bit  int
	name string
}{
	{Script, "SCRIPT"},
	{AccountDisabled, "ACCOUNTDISABLE"},
	{HomeDirRequired, "HOMEDIR_REQUIRED"},
	{Lockout, "LOCKOUT"},
	{PasswordNotRequired, "PASSWD_NOTREQD"},
	{PasswordCantChange, "PASSWD_CANT_CHANGE"},
	{EncryptedTextPassword, "ENCRYPTED_TEXT_PWD_ALLOWED"},
	{TempDuplicateAccount, "TEMP_DUPLICATE_ACCOUNT"},
	{NormalAccount, "NORMAL_ACCOUNT"},
	{InterdomainTrust, "INTERDOMAIN_TRUST_ACCOUNT"},
	{WorkstationTrust, "WORKSTATION_TRUST_ACCOUNT"},
	{ServerTrust, "SERVER_TRUST_ACCOUNT"},
	{DontExpirePassword, "DONT_EXPIRE_PASSWORD"},
	{MNSLogonAccount, "MNS_LOGON_ACCOUNT"},
	{SmartcardRequired, "SMARTCARD_REQUIRED"},
	{TrustedForDelegation, "TRUSTED_FOR_DELEGATION"},
	{NotDelegated, "NOT_DELEGATED"},
	{UseDESKeyOnly, "USE_DES_KEY_ONLY"},
	{DontRequirePreauth, "DONT_REQ_PREAUTH"},
	{PasswordExpired, "PASSWORD_EXPIRED"},
	{TrustedToAuthForDelegn, "TRUSTED_TO_AUTH_FOR_DELEGATION"},
}

// Describe returns the names of the flags set in value, lowest bit first.
func Describe(value int) []string {
	names := make([]string, 0, len(flagNames))

	for _, f := range flagNames {
		if value&f.bit != 0 {
			names = append(names, f.name)
		}
	}

	return names
}
