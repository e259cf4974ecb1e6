package app

import (
	"context"
	"errors"
	"strings"
)

const (
	requestScopeStatus   = "status_fetch"
	requestScopeChecks   = "checks_fetch"
	requestScopeSubmit   = "submit"
	requestScopePullInfo = "pull_info"
	requestScopeQueue    = "queue"
	requestScopeCancel   = "cancel"
)

type requestScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (m *Model) replaceRequestScope(name string) context.Context {
	if m == nil {
		return context.Background()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return context.Background()
	}
	m.cancelRequestScope(name)
	if m.requestScopes == nil {
		m.requestScopes = map[string]requestScope{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.requestScopes[name] = requestScope{ctx: ctx, cancel: cancel}
	return ctx
}

func (m *Model) cancelRequestScope(name string) {
	if m == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" || m.requestScopes == nil {
		return
	}
	scope, ok := m.requestScopes[name]
	if !ok {
		return
	}
	if scope.cancel != nil {
		scope.cancel()
	}
	delete(m.requestScopes, name)
}

// cancelFetchScopes stops the per-generation fetches. Called when a
// reload supersedes them; their late results are discarded by
// generation anyway.
func (m *Model) cancelFetchScopes() {
	m.cancelRequestScope(requestScopeStatus)
	m.cancelRequestScope(requestScopeChecks)
}

func (m *Model) cancelAllRequestScopes() {
	if m == nil || len(m.requestScopes) == 0 {
		return
	}
	for name, scope := range m.requestScopes {
		if scope.cancel != nil {
			scope.cancel()
		}
		delete(m.requestScopes, name)
	}
}

func isCanceledRequestError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled)
}
