// Command pkp-import migrates journals from a legacy PKP/OJS 2.x database
// into the target PostgreSQL schema.
//
// Usage:
//
//	pkp-import import journal <legacy-journal-id> --host --username --password --database [--driver] [--port]
//	pkp-import migrate
//	pkp-import version
//	pkp-import env
//
// Configuration is read from --config, CONFIG_PATH or ./config.yaml, then
// from the environment. Flags override the legacy connection settings.
//
// Exit codes: 0 = success, 1 = error.
package main

func main() {
	Execute()
}
