// Package pg connects to PostgreSQL through pgx/v5 and stores the subscription
// record in it.
//
//   - Connect opens a *pgxpool.Pool, retrying with a growing delay until the
//     database answers.
//   - Migrate applies the embedded goose migrations that create the
//     paywall_records table.
//   - KV implements the paywall Backend contract on that table. Creation uses
//     INSERT ... ON CONFLICT DO NOTHING and updates are conditioned on the
//     previous value, so concurrent writers cannot overwrite each other.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := paywall.NewStore(pg.NewKV(pool))
package pg
