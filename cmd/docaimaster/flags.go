package main

import "flag"

// cliOptions holds the parsed command-line options.
type cliOptions struct {
	ConfigFile   string
	InputFile    string
	OutputFile   string
	Mode         string
	HistoryLimit int
}

// parseFlags parses command-line flags, consolidating aliases.
func parseFlags() cliOptions {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	inputFile := flag.String("input", "", "Path to the document to validate (.html or plain text).")
	inputFileAlias := flag.String("i", "", "Alias for -input")

	outputFile := flag.String("output", "", "Optional path for the annotated HTML output with issue highlights.")
	outputFileAlias := flag.String("o", "", "Alias for -output")

	modeFlag := flag.String("mode", "validate", "Mode to run the tool: validate or history")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	historyLimit := flag.Int("history-limit", 20, "How many past runs to show in history mode")

	flag.Parse()

	opts := cliOptions{
		ConfigFile:   *configFile,
		InputFile:    *inputFile,
		OutputFile:   *outputFile,
		Mode:         *modeFlag,
		HistoryLimit: *historyLimit,
	}
	if opts.ConfigFile == "" && *configFileAlias != "" {
		opts.ConfigFile = *configFileAlias
	}
	if opts.InputFile == "" && *inputFileAlias != "" {
		opts.InputFile = *inputFileAlias
	}
	if opts.OutputFile == "" && *outputFileAlias != "" {
		opts.OutputFile = *outputFileAlias
	}
	if *modeFlagAlias != "" {
		opts.Mode = *modeFlagAlias
	}
	return opts
}
