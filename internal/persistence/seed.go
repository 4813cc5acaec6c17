package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inventory-service/internal/config"
)

// catalogSeed is the fixed first-boot catalog of trackable hardware classes.
var catalogSeed = []struct {
	Codigo      string
	Tipo        string
	Descripcion string
}{
	{"POS", "Punto de Venta", "Terminal para transacciones comerciales"},
	{"PINPAD", "Pinpad", "Dispositivo para ingreso de PIN"},
	{"SIM", "Tarjeta SIM", "Tarjeta para conectividad celular"},
}

// Seed provisions the default admin account and the item code catalog on
// first boot. It is idempotent: the admin is inserted only when absent and
// the catalog only when the table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping seed")
		return nil
	}

	var adminCount int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE username=$1`, cfg.AdminUsername,
	).Scan(&adminCount); err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("seed: hash admin password: %w", err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (username, password_hash, full_name, is_admin) VALUES ($1,$2,$3,TRUE)`,
			cfg.AdminUsername, string(hash), cfg.AdminFullName,
		); err != nil {
			return fmt.Errorf("seed: create admin: %w", err)
		}
		logger.Info("seeded default admin user", zap.String("username", cfg.AdminUsername))
	}

	var codeCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM item_codes`).Scan(&codeCount); err != nil {
		return fmt.Errorf("seed: check item codes: %w", err)
	}
	if codeCount == 0 {
		for _, code := range catalogSeed {
			if _, err := pool.Exec(ctx,
				`INSERT INTO item_codes (codigo, tipo, descripcion) VALUES ($1,$2,$3)`,
				code.Codigo, code.Tipo, code.Descripcion,
			); err != nil {
				return fmt.Errorf("seed: insert item code %s: %w", code.Codigo, err)
			}
		}
		logger.Info("seeded item code catalog", zap.Int("count", len(catalogSeed)))
	}

	return nil
}
