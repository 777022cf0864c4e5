package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
)

// describeError turns use-case errors into messages a parent can act on.
func describeError(err error) error {
	var (
		vErr    *domain.ValidationError
		planErr *app.PlanError
	)
	switch {
	case errors.As(err, &vErr):
		return fmt.Errorf("invalid %s: %s", vErr.Field, vErr.Message)
	case errors.As(err, &planErr) && planErr.Code == app.PlanErrNoProfile:
		return errors.New("no profile yet; run `thea onboard` first")
	case errors.As(err, &planErr) && planErr.Code == app.PlanErrInvalidRequest:
		return fmt.Errorf("invalid %s: %s", planErr.Field, planErr.Message)
	default:
		return err
	}
}
