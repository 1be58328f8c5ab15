// Package pg bootstraps the PostgreSQL layer backing booking and
// notification storage: a pgx/v5 connection pool with retrying startup,
// goose schema migrations, and a health check closure.
//
// Configuration comes from environment variables through the Config struct:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
