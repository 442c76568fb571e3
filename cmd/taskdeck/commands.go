package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/pkg/apiclient"
	"github.com/taskdeck/taskdeck/pkg/controller"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newController()
		if err != nil {
			return err
		}
		if err := c.Load(cmd.Context()); err != nil {
			return err
		}
		switch listFilter {
		case "all", "active", "completed":
			c.SetFilter(controller.Filter(listFilter))
		default:
			return fmt.Errorf("unknown filter %q: use all, active or completed", listFilter)
		}
		fmt.Print(controller.RenderList(c.ViewModel()))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newController()
		if err != nil {
			return err
		}
		c.SetNewTaskText(strings.Join(args, " "))
		if err := c.AddTask(cmd.Context()); err != nil {
			return err
		}
		fmt.Print(controller.RenderList(c.ViewModel()))
		return nil
	},
}

func setCompleted(cmd *cobra.Command, id string, completed bool) error {
	api, err := client()
	if err != nil {
		return err
	}
	tasks, err := api.ListTasks(cmd.Context())
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == id {
			if _, err := api.UpdateTask(cmd.Context(), id, t.Title, completed); err != nil {
				return err
			}
			fmt.Printf("task %s updated\n", id)
			return nil
		}
	}
	return fmt.Errorf("task %s not found", id)
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args[0], true)
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Mark a completed task active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args[0], false)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <title>...",
	Short: "Rename a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newController()
		if err != nil {
			return err
		}
		if err := c.Load(cmd.Context()); err != nil {
			return err
		}
		c.BeginEdit(args[0])
		if c.ViewModel().Edit == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		c.SetEditText(strings.Join(args[1:], " "))
		if err := c.SaveEdit(cmd.Context()); err != nil {
			return err
		}
		fmt.Print(controller.RenderList(c.ViewModel()))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := client()
		if err != nil {
			return err
		}
		if err := api.DeleteTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("task %s deleted\n", args[0])
		return nil
	},
}

var (
	profileName string
	profileBio  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := client()
		if err != nil {
			return err
		}

		if profileName != "" || profileBio != "" {
			patch := apiclient.ProfilePatch{}
			if profileName != "" {
				patch.DisplayName = &profileName
			}
			if profileBio != "" {
				patch.Bio = &profileBio
			}
			profile, err := api.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			printProfile(profile)
			return nil
		}

		profile, err := api.GetProfile(cmd.Context())
		if err != nil {
			return err
		}
		printProfile(profile)
		return nil
	},
}

func printProfile(p *apiclient.Profile) {
	fmt.Printf("%s\n", p.DisplayName)
	if p.Bio != "" {
		fmt.Printf("  %s\n", p.Bio)
	}
	fmt.Printf("  avatar: %s\n", p.Avatar)
	fmt.Printf("  theme: %s, notifications: %v\n", p.Preferences.Theme, p.Preferences.Notifications)
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download your tasks as an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := client()
		if err != nil {
			return err
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := api.ExportTasks(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "all", "show all, active or completed tasks")
	profileCmd.Flags().StringVar(&profileName, "name", "", "set the display name")
	profileCmd.Flags().StringVar(&profileBio, "bio", "", "set the bio")
	exportCmd.Flags().StringVar(&exportOut, "out", "tasks.xlsx", "output file")
}
