package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	apiserverFlag string

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "edit a single CLI config entry",
		Args:  cobra.ExactArgs(2),
		RunE:  configSet,
	}
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "edit multiple CLI config entries",
		RunE:  configInit,
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "print or edit CLI configuration",
		RunE:  configPrint,
	}
)

func init() {
	configInitCmd.Flags().StringVar(
		&apiserverFlag, "apiserver", initialState["apiserver"],
		"base URL of the selectiond instance to talk to",
	)
	configCmd.AddCommand(configSetCmd, configInitCmd)
}

func configSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", key, value)
	return nil
}

func configInit(_ *cobra.Command, _ []string) error {
	return setState(map[string]string{"apiserver": apiserverFlag})
}

func configPrint(_ *cobra.Command, _ []string) error {
	state, err := getState()
	if err != nil {
		return err
	}
	out, err := jsonPrint(state)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
