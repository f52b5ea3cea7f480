package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/donatello/internal/client/client"
)

var _ client.Navigator = (*App)(nil)

// Redirect implements client.Navigator. The prompt is derived from the
// session state, so only the remembered user name and a notice are needed
// here.
func (a *App) Redirect(ctx context.Context, target string) {
	a.userName = ""

	switch target {
	case client.LoginEntryPoint:
		a.logger.Info(ctx, "session expired, redirecting to login")
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	case client.RootEntryPoint:
		fmt.Fprintln(a.out, "Logged out.")
	default:
		fmt.Fprintf(a.out, "Redirected to %s\n", target)
	}
}
