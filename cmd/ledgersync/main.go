// Command ledgersync moves the spreadsheet ledger into Postgres and pushes
// computed transaction fields back to the sheet.
//
// Usage:
//
//	ledgersync schema    # apply database migrations
//	ledgersync migrate   # one-time load of rules, aliases and transactions, then verify
//	ledgersync sync      # push dirty transaction rows back to the sheet (run from cron)
//	ledgersync verify    # print table counts and the entity breakdown
//
// Configuration comes from the environment, optionally seeded from .env and .env.local.
package main

func main() {
	Execute()
}
