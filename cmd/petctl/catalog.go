package main

import (
	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/domain"
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Category operations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			categories, err := a.api.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(categories)
		}),
	})

	var in domain.CategoryInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			category, err := a.api.CreateCategory(cmd.Context(), a.token(), in)
			if err != nil {
				return err
			}
			return a.print(category)
		}),
	}
	addCategoryFlags(createCmd, &in)
	_ = createCmd.MarkFlagRequired("name")
	cmd.AddCommand(createCmd)

	var upd domain.CategoryInput
	updateCmd := &cobra.Command{
		Use:   "update CATEGORY_ID",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			category, err := a.api.UpdateCategory(cmd.Context(), a.token(), args[0], upd)
			if err != nil {
				return err
			}
			return a.print(category)
		}),
	}
	addCategoryFlags(updateCmd, &upd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete CATEGORY_ID",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.api.DeleteCategory(cmd.Context(), a.token(), args[0]); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": args[0]})
		}),
	})
	return cmd
}

func addCategoryFlags(cmd *cobra.Command, in *domain.CategoryInput) {
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "Category name")
	cmd.Flags().StringVarP(&in.Slug, "slug", "s", "", "Category slug")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Category description")
}
