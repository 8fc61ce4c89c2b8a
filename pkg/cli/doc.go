/*
Package cli provides command-line helpers for the whalegate command.

Output Formatting:

Fetched payloads are printed either as indented JSON or as aligned text
tables:

	format, err := cli.ParseFormat(flagValue)
	if err != nil {
		return err
	}
	if format == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, raw)
	}
	table := &cli.Table{Headers: []string{"PRICE", "SIZE"}}
	table.Append("0.52", "1200")
	return table.Render(os.Stdout)

Errors:

ConfigError and CommandError carry enough context for a one-line message on
stderr. ExitCode maps them to the process exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
