package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/avelasco/stride/internal/domain"
)

// scopeValue validates --scope at parse time so bad altitudes fail before
// any service call. Empty means "not set".
type scopeValue struct {
	scope *string
}

var _ pflag.Value = scopeValue{}

func (v scopeValue) String() string {
	if v.scope == nil {
		return ""
	}
	return *v.scope
}

func (v scopeValue) Set(s string) error {
	if s != "" && !domain.ValidOrgScopes[s] {
		return fmt.Errorf("invalid scope %q (want strategic|departmental|team|initiative|project)", s)
	}
	*v.scope = s
	return nil
}

func (v scopeValue) Type() string {
	return "scope"
}
