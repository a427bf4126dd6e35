package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/domain"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Order operations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List orders of the current user",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			orders, err := a.api.ListOrders(cmd.Context(), a.token())
			if err != nil {
				return err
			}
			return a.print(orders)
		}),
	})

	var address, paymentMethod, paymentRef string
	var items []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			cart, err := parseCartItems(items)
			if err != nil {
				return err
			}
			params := domain.CreateOrderParams{Address: address, Items: cart}
			if paymentMethod != "" || paymentRef != "" {
				params.Payment = &domain.PaymentInfo{Method: paymentMethod, Reference: paymentRef}
			}
			order, err := a.api.CreateOrder(cmd.Context(), a.token(), params)
			if err != nil {
				return err
			}
			return a.print(order)
		}),
	}
	createCmd.Flags().StringVar(&address, "address", "", "Delivery address (required)")
	createCmd.Flags().StringSliceVarP(&items, "item", "i", nil, "Cart item as PRODUCT_ID:QUANTITY (repeatable)")
	createCmd.Flags().StringVar(&paymentMethod, "payment-method", "", "Payment method")
	createCmd.Flags().StringVar(&paymentRef, "payment-ref", "", "Payment reference")
	_ = createCmd.MarkFlagRequired("address")
	_ = createCmd.MarkFlagRequired("item")
	cmd.AddCommand(createCmd)
	return cmd
}

// parseCartItems разбирает элементы вида PRODUCT_ID:QUANTITY; количество по умолчанию 1.
func parseCartItems(raw []string) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(raw))
	for _, entry := range raw {
		id, qty, hasQty := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("invalid item %q: product id is empty", entry)
		}
		quantity := 1
		if hasQty {
			n, err := strconv.Atoi(strings.TrimSpace(qty))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid item %q: quantity must be a positive integer", entry)
			}
			quantity = n
		}
		items = append(items, domain.CartItem{ProductID: id, Quantity: quantity})
	}
	return items, nil
}
