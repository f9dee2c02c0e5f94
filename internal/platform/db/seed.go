package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"talent/internal/domain/auth"
	"talent/internal/platform/config"
)

// Seed ensures the admin login and, when enabled, the directory fixtures the
// dashboard widgets expect. Fixtures go through the same tables the real
// directory would use so the presentation layer stays swappable.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	if !cfg.SeedFixtures {
		return nil
	}
	return ensureDirectoryFixtures(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, display_name)
    VALUES ($1, $2, $3)
  `, email, hash, "HR Admin")
	return err
}

func ensureDirectoryFixtures(ctx context.Context, pool *pgxpool.Pool) error {
	departments := []string{"Engineering", "Design", "People Operations"}
	departmentIDs := make(map[string]string, len(departments))
	for _, name := range departments {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", name).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
			if err != nil {
				return err
			}
		}
		departmentIDs[name] = id
	}

	employees := []struct {
		firstName  string
		lastName   string
		email      string
		position   string
		department string
	}{
		{"Maya", "Chen", "maya.chen@example.com", "Engineering Manager", "Engineering"},
		{"Tomás", "Rivera", "tomas.rivera@example.com", "Senior Engineer", "Engineering"},
		{"Ingrid", "Olsen", "ingrid.olsen@example.com", "Design Lead", "Design"},
		{"Sam", "Whitfield", "sam.whitfield@example.com", "HR Partner", "People Operations"},
	}
	for _, emp := range employees {
		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", emp.email).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (first_name, last_name, email, position, department_id, status)
      VALUES ($1, $2, $3, $4, $5, 'active')
    `, emp.firstName, emp.lastName, emp.email, emp.position, departmentIDs[emp.department]); err != nil {
			return err
		}
	}
	return nil
}
