package auth

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/authkit/internal/accountcontrol"
	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

// ErrLDAPDisabled is returned when LDAP authentication is disabled via configuration.
var ErrLDAPDisabled = errors.New("ldap authentication is disabled")

const memberOfAttr = "memberOf"

// LDAPConfig holds LDAP/Active Directory connection and lookup settings.
type LDAPConfig struct {
	// Enabled indicates if LDAP authentication is enabled.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	// Host is the LDAP server hostname or IP address.
	Host string `mapstructure:"host" json:"host" yaml:"host" validate:"required_if=Enabled true"`
	// Port is the LDAP server port (typically 389 for LDAP, 636 for LDAPS).
	Port int `mapstructure:"port" json:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
	// UseSSL enables LDAPS (LDAP over SSL/TLS).
	UseSSL bool `mapstructure:"useSSL" json:"useSSL" yaml:"useSSL"`
	// UseTLS enables StartTLS to upgrade an LDAP connection to TLS.
	UseTLS bool `mapstructure:"useTLS" json:"useTLS" yaml:"useTLS"`
	// SkipVerify skips TLS certificate verification (insecure, for testing only).
	SkipVerify bool `mapstructure:"skipVerify" json:"skipVerify" yaml:"skipVerify"`
	// BindDN is the distinguished name used for searches. Empty means anonymous searches.
	BindDN string `mapstructure:"bindDN" json:"bindDN" yaml:"bindDN"`
	// BindPassword is the password for BindDN.
	BindPassword string `mapstructure:"bindPassword" json:"-" yaml:"-"`
	// BaseDN is the base distinguished name for user searches.
	BaseDN string `mapstructure:"baseDN" json:"baseDN" yaml:"baseDN" validate:"required_if=Enabled true"`
	// UserFilter finds the user entry; {username} is replaced with the escaped username.
	UserFilter string `mapstructure:"userFilter" json:"userFilter" yaml:"userFilter"`
	// GroupBaseDN is the base for group searches. Empty means groups come from the memberOf attribute.
	GroupBaseDN string `mapstructure:"groupBaseDN" json:"groupBaseDN" yaml:"groupBaseDN"`
	// GroupFilter finds the user's groups; {userdn} is replaced with the escaped user DN.
	GroupFilter string `mapstructure:"groupFilter" json:"groupFilter" yaml:"groupFilter"`
	// UsernameAttr is the attribute holding the login name (e.g., "uid", "sAMAccountName").
	UsernameAttr string `mapstructure:"usernameAttr" json:"usernameAttr" yaml:"usernameAttr"`
	// EmailAttr is the attribute holding the email address.
	EmailAttr string `mapstructure:"emailAttr" json:"emailAttr" yaml:"emailAttr"`
	// FirstNameAttr is the attribute holding the given name.
	FirstNameAttr string `mapstructure:"firstNameAttr" json:"firstNameAttr" yaml:"firstNameAttr"`
	// LastNameAttr is the attribute holding the surname.
	LastNameAttr string `mapstructure:"lastNameAttr" json:"lastNameAttr" yaml:"lastNameAttr"`
	// GroupNameAttr is the group attribute used as the raw authority (e.g., "cn").
	GroupNameAttr string `mapstructure:"groupNameAttr" json:"groupNameAttr" yaml:"groupNameAttr"`
	// Timeout is the connection and search timeout in seconds.
	Timeout int `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"min=0"`
	// SearchAttributes are additional attributes to retrieve for the user entry.
	SearchAttributes []string `mapstructure:"searchAttributes" json:"searchAttributes" yaml:"searchAttributes"`
}

func (c *LDAPConfig) setDefaults() {
	if c.UsernameAttr == "" {
		c.UsernameAttr = "uid"
	}

	if c.UserFilter == "" {
		c.UserFilter = "(" + c.UsernameAttr + "={username})"
	}

	if c.EmailAttr == "" {
		c.EmailAttr = "mail"
	}

	if c.FirstNameAttr == "" {
		c.FirstNameAttr = "givenName"
	}

	if c.LastNameAttr == "" {
		c.LastNameAttr = "sn"
	}

	if c.GroupNameAttr == "" {
		c.GroupNameAttr = "cn"
	}

	if c.GroupFilter == "" {
		c.GroupFilter = "(member={userdn})"
	}

	if c.Port == 0 {
		c.Port = 389
		if c.UseSSL {
			c.Port = 636
		}
	}

	if c.Timeout == 0 {
		c.Timeout = 10
	}
}

// Conn is the subset of *ldap.Conn used by LDAPProvider.
type Conn interface {
	Bind(username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(modifyRequest *ldap.ModifyRequest) error
	Close() error
}

// Dialer opens a connection to the directory described by config.
type Dialer func(config *LDAPConfig) (Conn, error)

// DirectoryUser is a user entry resolved from the directory.
type DirectoryUser struct {
	DN          string                    `json:"dn"`
	Username    string                    `json:"username"`
	Email       string                    `json:"email,omitempty"`
	FirstName   string                    `json:"firstName,omitempty"`
	LastName    string                    `json:"lastName,omitempty"`
	Groups      []string                  `json:"groups,omitempty"`
	Evaluation  accountcontrol.Evaluation `json:"evaluation"`
	Authorities authority.Set             `json:"-"`
}

// Password returns the account status string "<nonExpired>:<nonLocked>:<credentialsNonExpired>:<enabled>-<dn>".
func (u *DirectoryUser) Password() string {
	return u.Evaluation.Format(u.DN)
}

// LDAPProvider handles LDAP authentication.
type LDAPProvider struct {
	config     *LDAPConfig
	dial       Dialer
	mapper     claims.AuthoritiesMapper
	evaluator  accountcontrol.Evaluator
	transcoder *accountcontrol.Transcoder
}

// NewLDAPProvider creates a new LDAP provider. A nil evaluator disables account
// control checks and a nil transcoder uses the Active Directory default value.
func NewLDAPProvider(
	config *LDAPConfig,
	mapper claims.AuthoritiesMapper,
	evaluator accountcontrol.Evaluator,
	transcoder *accountcontrol.Transcoder,
) (*LDAPProvider, error) {
	if !config.Enabled {
		return nil, ErrLDAPDisabled
	}

	config.setDefaults()

	if evaluator == nil {
		evaluator = accountcontrol.NoAccountControlEvaluator{}
	}

	if transcoder == nil {
		transcoder = accountcontrol.NewDefaultTranscoder()
	}

	return &LDAPProvider{
		config:     config,
		dial:       dialLDAP,
		mapper:     mapper,
		evaluator:  evaluator,
		transcoder: transcoder,
	}, nil
}

// WithDialer replaces the function used to open directory connections.
func (p *LDAPProvider) WithDialer(d Dialer) *LDAPProvider {
	p.dial = d
	return p
}

// Connect establishes a connection to the LDAP server.
func (p *LDAPProvider) Connect() (Conn, error) {
	return p.dial(p.config)
}

func dialLDAP(config *LDAPConfig) (Conn, error) {
	hostPort := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))

	var ldapURL string
	if config.UseSSL {
		ldapURL = "ldaps://" + hostPort
	} else {
		ldapURL = "ldap://" + hostPort
	}

	var tlsConfig *tls.Config
	if config.UseSSL || config.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: config.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         config.Host,
		}
	}

	conn, err := ldap.DialURL(ldapURL, ldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	// Upgrade to TLS if requested (for non-SSL connections)
	if !config.UseSSL && config.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	if config.Timeout > 0 {
		conn.SetTimeout(time.Duration(config.Timeout) * time.Second)
	}

	return conn, nil
}

// Authenticate looks up username, rejects unusable accounts, binds as the user
// and resolves the user's authorities.
func (p *LDAPProvider) Authenticate(username, password string) (*DirectoryUser, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	return p.resolve(username, func(conn Conn, user *DirectoryUser) error {
		if !user.Evaluation.Enabled {
			return ErrUserAccountDisabled
		}

		if !user.Evaluation.Usable() {
			return ErrUserAccountUnusable
		}

		if err := conn.Bind(user.DN, password); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		return nil
	})
}

// Lookup resolves username and its authorities without binding as the user.
// The account evaluation is returned as found, disabled accounts included.
func (p *LDAPProvider) Lookup(username string) (*DirectoryUser, error) {
	return p.resolve(username, nil)
}

// resolve runs the search, evaluation and group steps shared by Authenticate and
// Lookup. verify, when set, runs after evaluation and before the group search.
func (p *LDAPProvider) resolve(username string, verify func(Conn, *DirectoryUser) error) (*DirectoryUser, error) {
	conn, err := p.Connect()
	if err != nil {
		return nil, err
	}

	defer p.close(conn)

	if errBind := p.bindService(conn); errBind != nil {
		return nil, errBind
	}

	entry, errSearch := p.searchUserEntry(conn, username)
	if errSearch != nil {
		return nil, errSearch
	}

	evaluation, errEval := accountcontrol.Evaluate(p.evaluator, entry)
	if errEval != nil {
		return nil, fmt.Errorf("failed to evaluate account control of %s: %w", entry.DN, errEval)
	}

	user := &DirectoryUser{
		DN:         entry.DN,
		Username:   username,
		Email:      entry.GetAttributeValue(p.config.EmailAttr),
		FirstName:  entry.GetAttributeValue(p.config.FirstNameAttr),
		LastName:   entry.GetAttributeValue(p.config.LastNameAttr),
		Evaluation: evaluation,
	}

	if name := entry.GetAttributeValue(p.config.UsernameAttr); name != "" {
		user.Username = name
	}

	if verify != nil {
		if errVerify := verify(conn, user); errVerify != nil {
			log.Debug().Err(errVerify).Str("dn", user.DN).Msg("ldap user rejected")

			return nil, errVerify
		}

		// the user bind replaced the service identity
		if errRebind := p.bindService(conn); errRebind != nil {
			return nil, errRebind
		}
	}

	groups, errGroups := p.getUserGroups(conn, entry)
	if errGroups != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", errGroups)
	}

	user.Groups = groups

	if p.mapper != nil {
		user.Authorities = p.mapper.MapAuthorities(groups)
	}

	log.Debug().
		Str("dn", user.DN).
		Str("evaluation", user.Password()).
		Strs("groups", groups).
		Msg("ldap user resolved")

	return user, nil
}

// SetAccountEnabled sets or clears the disabled bit of the user's
// userAccountControl attribute and returns the value written.
func (p *LDAPProvider) SetAccountEnabled(username string, enabled bool) (int, error) {
	conn, err := p.Connect()
	if err != nil {
		return 0, err
	}

	defer p.close(conn)

	if errBind := p.bindService(conn); errBind != nil {
		return 0, errBind
	}

	entry, errSearch := p.searchUserEntry(conn, username)
	if errSearch != nil {
		return 0, errSearch
	}

	var current *int

	if values := entry.GetAttributeValues(accountcontrol.AttributeName); len(values) > 0 {
		decoded, errDecode := p.transcoder.DecodeStringValue(&values[0])
		if errDecode != nil {
			return 0, errDecode
		}

		current = &decoded
	}

	value := p.transcoder.UserAccountControlValue(enabled, current)

	req := ldap.NewModifyRequest(entry.DN, nil)
	req.Replace(accountcontrol.AttributeName, []string{p.transcoder.EncodeStringValue(&value)})

	if errModify := conn.Modify(req); errModify != nil {
		return 0, fmt.Errorf("failed to modify %s: %w", accountcontrol.AttributeName, errModify)
	}

	log.Info().Str("dn", entry.DN).Bool("enabled", enabled).Int("value", value).Msg("account control updated")

	return value, nil
}

// TestConnection tests the LDAP server connection and bind credentials.
func (p *LDAPProvider) TestConnection() error {
	conn, err := p.Connect()
	if err != nil {
		return err
	}

	defer p.close(conn)

	return p.bindService(conn)
}

func (p *LDAPProvider) close(conn Conn) {
	if errClose := conn.Close(); errClose != nil {
		log.Warn().Err(errClose).Msg("failed to close LDAP connection")
	}
}

// bindService binds with the configured service account, if any.
func (p *LDAPProvider) bindService(conn Conn) error {
	if p.config.BindDN == "" {
		return nil
	}

	if err := conn.Bind(p.config.BindDN, p.config.BindPassword); err != nil {
		return fmt.Errorf("failed to bind with service account: %w", err)
	}

	return nil
}

// searchUserEntry searches LDAP for the given username and returns a single entry.
func (p *LDAPProvider) searchUserEntry(conn Conn, username string) (*ldap.Entry, error) {
	userFilter := strings.ReplaceAll(p.config.UserFilter, "{username}", ldap.EscapeFilter(username))

	attributes := append([]string{
		p.config.UsernameAttr,
		p.config.EmailAttr,
		p.config.FirstNameAttr,
		p.config.LastNameAttr,
		accountcontrol.AttributeName,
		memberOfAttr,
	}, p.config.SearchAttributes...)

	searchRequest := ldap.NewSearchRequest(
		p.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // Size limit
		p.config.Timeout,
		false,
		userFilter,
		attributes,
		nil,
	)

	searchResult, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search for user: %w", err)
	}

	switch len(searchResult.Entries) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return searchResult.Entries[0], nil
	default:
		return nil, ErrMultipleUsersFound
	}
}

// getUserGroups returns the names of the user's groups. Without a GroupBaseDN
// the names are taken from the first RDN of each memberOf value.
func (p *LDAPProvider) getUserGroups(conn Conn, user *ldap.Entry) ([]string, error) {
	if p.config.GroupBaseDN == "" {
		return groupNamesFromMemberOf(user.GetAttributeValues(memberOfAttr)), nil
	}

	groupFilter := strings.ReplaceAll(p.config.GroupFilter, "{userdn}", ldap.EscapeFilter(user.DN))
	searchRequest := ldap.NewSearchRequest(
		p.config.GroupBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		p.config.Timeout,
		false,
		groupFilter,
		[]string{p.config.GroupNameAttr},
		nil,
	)

	searchResult, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search for groups: %w", err)
	}

	groups := make([]string, 0, len(searchResult.Entries))

	for _, entry := range searchResult.Entries {
		name := entry.GetAttributeValue(p.config.GroupNameAttr)
		if name == "" {
			name = entry.DN
		}

		groups = append(groups, name)
	}

	return groups, nil
}

func groupNamesFromMemberOf(values []string) []string {
	groups := make([]string, 0, len(values))

	for _, v := range values {
		dn, err := ldap.ParseDN(v)
		if err != nil || len(dn.RDNs) == 0 || len(dn.RDNs[0].Attributes) == 0 {
			log.Warn().Err(err).Str("memberOf", v).Msg("skipping unparsable group dn")

			continue
		}

		groups = append(groups, dn.RDNs[0].Attributes[0].Value)
	}

	return groups
}
