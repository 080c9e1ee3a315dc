package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "zobjectupdate", Normalize("ZObject_update"))
	assert.Equal(t, "zobjectupdate", Normalize("zobject-Update"))
	assert.Equal(t, "orderitem", Normalize("Order Item"))
	assert.Equal(t, "", Normalize(""))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"OrderItem", "OrderAction", "OrderMetric", "TriggerDate", "Subscription"}

	assert.Equal(t, []string{"OrderItem"}, Suggest("OrderItm", candidates, 3))
	assert.Equal(t, []string{"TriggerDate"}, Suggest("trigger_date", candidates, 3))
	assert.Empty(t, Suggest("Invoice", candidates, 3))
	assert.Empty(t, Suggest("OrderItm", candidates, 0))
	assert.Empty(t, Suggest("OrderItem", []string{"OrderItem"}, 3))
}

func TestSuggestStableOrder(t *testing.T) {
	got := Suggest("Orderxx", []string{"OrderB", "OrderA"}, 5)
	assert.Equal(t, []string{"OrderA", "OrderB"}, got)
}
