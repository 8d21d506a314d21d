package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// addInputFlags registers the flags shared by commands that read a program.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to process")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
}

func shouldRunRepl(cmd *cobra.Command, args []string) bool {
	if len(args) > 0 {
		return false
	}
	return isTerminalIO()
}

// source is a program to process along with the name it is reported under.
type source struct {
	code     string
	filename string
}

func getMonkeyCode(cmd *cobra.Command, args []string) (source, error) {
	// Determine what code is to be processed. There are three possibilities:
	// 1. --code <code>
	// 2. --stdin (read code from stdin)
	// 3. path as args[0]
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return source{}, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return source{}, errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return source{}, err
		}
		return source{code: string(data), filename: "<stdin>"}, nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return source{}, err
		}
		return source{code: string(data), filename: args[0]}, nil
	case codeFlagSet:
		code, err := cmd.Flags().GetString("code")
		return source{code: code}, err
	}
	return source{}, errors.New("no input provided")
}
