// Package langusta is the consumer-facing entry point of the module.
//
// A Langusta instance owns one reconciliation engine, one active language and one update
// notifier. It is constructed once with New, which reads the bundled baseline synchronously
// and reconciles it against the injected store. Remote updates are pulled with Fetch (non
// blocking) or Refresh (blocking) and merged into the active set when their version is newer.
//
// Lookups never touch the network:
//
//	l, err := langusta.New(ctx, langusta.Config{
//		Platform:           payload.PlatformIOS,
//		SupportedLanguages: []string{langusta.Czech, langusta.English},
//		DefaultLanguage:    langusta.Czech,
//		DataSource:         datasource.NewComposite(datasource.File("baseline.json"), remote),
//		ValuePolicy:        lookup.Placeholder,
//	})
//	greeting := l.LocaArg("greeting", "Petr")
//
// Every refresh, successful or not, is followed by a notification on OnUpdate, delivered
// through Config.Dispatch.
package langusta
