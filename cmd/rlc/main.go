package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/coral"
	"github.com/virada/rolelist/pkg/librl"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	endpoint string
)

func main() {
	c := &coral.Command{
		Use:     "rlc",
		Short:   "Rolelist client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    coral.NoArgs,
	}
	c.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "http://localhost:5000", "Server endpoint")
	c.AddCommand(listCmd)
	c.AddCommand(watchCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	listCmd = &coral.Command{
		Use:   "list [CATEGORY]",
		Short: "List all items in display order",
		Args:  coral.MaximumNArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			client, err := librl.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}

			category := ""
			if len(args) > 0 {
				category = args[0]
			}

			items, err := client.ListItems(category)
			if err != nil {
				return err
			}

			for _, item := range items {
				printItem(item)
			}
			return nil
		},
	}

	watchCmd = &coral.Command{
		Use:   "watch",
		Short: "Mirror the list and print it on every change",
		Args:  coral.NoArgs,
		RunE: func(_ *coral.Command, _ []string) error {
			client, err := librl.NewDefaultClient(endpoint)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// Subscribe before the initial fetch so no mutation that commits
			// in between is missed. Replayed duplicates are idempotent.
			stream, err := client.Stream(ctx)
			if err != nil {
				return err
			}
			defer stream.Close()

			items, err := client.ListItems("")
			if err != nil {
				return err
			}

			mirror := librl.NewMirror()
			mirror.SetOnChange(func() {
				fmt.Println("---")
				for _, item := range mirror.Items() {
					printItem(item)
				}
			})
			mirror.Load(items)

			for event := range stream.Events() {
				mirror.Apply(event)
			}
			return nil
		},
	}
)

func printItem(item *librl.Item) {
	mark := " "
	if item.Done {
		mark = "x"
	}

	schedule := ""
	if item.Date != nil {
		schedule = item.Date.Format("2006-01-02")
	}
	if item.Time != "" {
		schedule = fmt.Sprintf("%s %s", schedule, item.Time)
	}

	fmt.Printf("[%s] %-6s %-30s %s (%d comments)\n", mark, item.Category, item.Title, schedule, len(item.Comments))
}
