package ordering

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerConfirmationMessage(t *testing.T) {
	order := placeTestOrder(t)

	msg := CustomerConfirmationMessage(order)
	assert.True(t, strings.HasPrefix(msg, "Commande #"+order.ID.String()[:8]))
	assert.Contains(t, msg, "Total: 5 000 FCFA")
	assert.Contains(t, msg, "Livraison: Ouakam, Dakar")
	assert.Contains(t, msg, "Merci pour votre commande !")
}

func TestManagerAlertMessage(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		order := placeTestOrder(t)

		msg := ManagerAlertMessage(order)
		assert.Contains(t, msg, "Nouvelle commande #"+order.ID.String()[:8])
		assert.Contains(t, msg, "Client: Awa Diop (+221770001122)")
		assert.Contains(t, msg, "Adresse: Ouakam, Dakar")
		assert.Contains(t, msg, "Articles: 2x Kebab Poulet")
		assert.Contains(t, msg, "Details: Sans oignons")
		assert.True(t, strings.HasSuffix(msg, "Total: 5 000 FCFA"))
	})

	t.Run("details line omitted when empty", func(t *testing.T) {
		order := placeTestOrder(t)
		order.Details = ""

		msg := ManagerAlertMessage(order)
		assert.NotContains(t, msg, "Details:")
	})
}

func TestNotifier_NilSender(t *testing.T) {
	notifier := NewNotifier(nil, "771112233", nil)
	require.NotPanics(t, func() {
		notifier.NotifyOrderPlaced(context.Background(), placeTestOrder(t))
	})
}
