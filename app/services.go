package app

import (
	"context"

	"github.com/GoPowerDNS-Admin/authkit/internal/accountcontrol"
	"github.com/GoPowerDNS-Admin/authkit/internal/auth"
	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

func (e *env) normalizer() (*authority.Normalizer, error) {
	return authority.New(e.cfg.Authorities)
}

func (e *env) transcoder() *accountcontrol.Transcoder {
	if v := e.cfg.AccountControl.DefaultValue; v != nil {
		return accountcontrol.NewTranscoder(*v)
	}

	return accountcontrol.NewDefaultTranscoder()
}

func (e *env) evaluator() (accountcontrol.Evaluator, error) {
	return accountcontrol.NewEvaluator(e.cfg.AccountControl.Directory, e.transcoder())
}

func (e *env) converter() (*claims.Converter, error) {
	n, err := e.normalizer()
	if err != nil {
		return nil, err
	}

	return claims.NewConverter(e.cfg.JWT.Claims, n)
}

func (e *env) ldapProvider() (*auth.LDAPProvider, error) {
	n, err := e.normalizer()
	if err != nil {
		return nil, err
	}

	ev, err := e.evaluator()
	if err != nil {
		return nil, err
	}

	return auth.NewLDAPProvider(&e.cfg.LDAP, n, ev, e.transcoder())
}

func (e *env) oidcProvider(ctx context.Context) (*auth.OIDCProvider, error) {
	if !e.cfg.OIDC.Enabled {
		return nil, auth.ErrOIDCDisabled
	}

	conv, err := e.converter()
	if err != nil {
		return nil, err
	}

	return auth.NewOIDCProvider(ctx, &e.cfg.OIDC, conv)
}
