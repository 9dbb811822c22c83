package providerconfig

import (
	"context"
	"fmt"

	"bwh/core-api/internal/modules/providerconfig/repository"
	"bwh/core-api/pkg/webhook/providers"
)

// Hydrate loads every enabled ProviderConfig row into reg, in addition
// to whatever builtins the caller has already registered. It is called
// once at boot (bootstrap_api.go) and may be called again on a periodic
// refresh to pick up secret rotations without a restart.
func Hydrate(ctx context.Context, qry repository.ProviderConfigQueryRepository, reg *providers.Registry) error {
	rows, err := qry.FindAllEnabled(ctx)
	if err != nil {
		return fmt.Errorf("providerconfig: hydrate: %w", err)
	}

	for _, row := range rows {
		p, err := providers.New(providers.Config{
			Name:            row.Name,
			Type:            row.Type,
			Secret:          row.Secret,
			TwilioURL:       row.TwilioURL,
			SignatureHeader: row.SignatureHeader,
			Algorithm:       row.Algorithm,
		})
		if err != nil {
			return fmt.Errorf("providerconfig: hydrate %q: %w", row.Name, err)
		}
		reg.Register(p)
	}

	return nil
}
