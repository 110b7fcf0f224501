package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/service"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage a store's notification templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list <store-id>",
	Short: "List notification templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		templates, err := service.NewTemplateService(c).List(cmd.Context(), id)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tEVENT\tACTIVE")
		for _, tmpl := range templates {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				tmpl.TemplateID, tmpl.TemplateName, tmpl.TemplateType,
				tmpl.EventType, yesNo(tmpl.IsActive))
		}
		return w.Flush()
	},
}

var templateFlags struct {
	name    string
	kind    string
	event   string
	title   string
	message string
	active  bool
}

func templateRequestFromFlags() service.TemplateRequest {
	return service.TemplateRequest{
		TemplateName:    templateFlags.name,
		TemplateType:    templateFlags.kind,
		EventType:       templateFlags.event,
		TitleTemplate:   templateFlags.title,
		MessageTemplate: templateFlags.message,
		IsActive:        templateFlags.active,
	}
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create <store-id>",
	Short: "Create a notification template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := service.NewTemplateService(c).Create(cmd.Context(), id, templateRequestFromFlags()); err != nil {
			return err
		}
		fmt.Println("Template created")
		return nil
	},
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update <store-id> <template-id>",
	Short: "Update a notification template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		templateID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id %q", args[1])
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := service.NewTemplateService(c).Update(cmd.Context(), id, templateID, templateRequestFromFlags()); err != nil {
			return err
		}
		fmt.Println("Template updated")
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <store-id> <template-id>",
	Short: "Delete a notification template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		templateID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id %q", args[1])
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := service.NewTemplateService(c).Delete(cmd.Context(), id, templateID); err != nil {
			return err
		}
		fmt.Println("Template deleted")
		return nil
	},
}

func addTemplateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&templateFlags.name, "name", "", "template name")
	f.StringVar(&templateFlags.kind, "type", "", "template type (promotional, transactional, order_status)")
	f.StringVar(&templateFlags.event, "event", "", "event type the template fires on")
	f.StringVar(&templateFlags.title, "title", "", "title template")
	f.StringVar(&templateFlags.message, "message", "", "message template")
	f.BoolVar(&templateFlags.active, "active", true, "whether the template is active")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("message")
}

func init() {
	addTemplateFlags(templatesCreateCmd)
	addTemplateFlags(templatesUpdateCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesCreateCmd, templatesUpdateCmd, templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}
