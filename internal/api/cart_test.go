package api

import (
	"littlelemon/internal/domain"
	"net/http"
	"testing"
)

func TestCartAddAndView(t *testing.T) {
	gdb, r := newTestServer(t)
	customer := createUser(t, gdb, "alice")
	token := issueToken(t, gdb, customer)
	item := createMenuItem(t, gdb, "Bruschetta", 5.50)

	w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 3}, token)
	wantStatus(t, w, http.StatusOK)
	wantBodyField(t, w, "success", "Item added successfully to cart")

	w = doRequest(t, r, http.MethodGet, "/api/cart/menu-items", nil, token)
	wantStatus(t, w, http.StatusOK)
	var cart []domain.Cart
	decodeBody(t, w, &cart)
	if len(cart) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart))
	}
	line := cart[0]
	if line.Quantity != 3 || line.UnitPrice != 5.50 || line.Price != 16.50 {
		t.Errorf("line = q%d unit %.2f price %.2f, want q3 unit 5.50 price 16.50",
			line.Quantity, line.UnitPrice, line.Price)
	}
}

// A repeat add of the same item replaces the quantity, it never sums
func TestCartRepeatAddReplacesQuantity(t *testing.T) {
	gdb, r := newTestServer(t)
	customer := createUser(t, gdb, "alice")
	token := issueToken(t, gdb, customer)
	item := createMenuItem(t, gdb, "Lasagna", 12.00)

	w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 3}, token)
	wantStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 5}, token)
	wantStatus(t, w, http.StatusOK)
	wantBodyField(t, w, "success", "Item quantity change updated successfully in cart")

	var cart []domain.Cart
	if err := gdb.Where("user_id = ?", customer.ID).Find(&cart).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (replace, not 8)", cart[0].Quantity)
	}
	if cart[0].Price != 60.00 {
		t.Errorf("price = %.2f, want 60.00", cart[0].Price)
	}
}

// The unit price snapshot taken on first add survives later menu edits
func TestCartKeepsUnitPriceSnapshot(t *testing.T) {
	gdb, r := newTestServer(t)
	customer := createUser(t, gdb, "alice")
	token := issueToken(t, gdb, customer)
	item := createMenuItem(t, gdb, "Tiramisu", 8.00)

	w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 2}, token)
	wantStatus(t, w, http.StatusOK)

	// The menu price changes after the line was created
	if err := gdb.Model(item).Update("price", 99.00).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	w = doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 4}, token)
	wantStatus(t, w, http.StatusOK)

	var line domain.Cart
	if err := gdb.Where("user_id = ?", customer.ID).First(&line).Error; err != nil {
		t.Fatalf("load line: %v", err)
	}
	if line.UnitPrice != 8.00 {
		t.Errorf("unit price = %.2f, want the 8.00 snapshot", line.UnitPrice)
	}
	if line.Price != 32.00 {
		t.Errorf("price = %.2f, want 32.00 (4 × snapshot)", line.Price)
	}
}

func TestCartAddValidation(t *testing.T) {
	gdb, r := newTestServer(t)
	customer := createUser(t, gdb, "alice")
	token := issueToken(t, gdb, customer)
	item := createMenuItem(t, gdb, "Greek Salad", 7.25)

	t.Run("missing fields are named", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items", jsonBody{}, token)
		wantStatus(t, w, http.StatusBadRequest)
		var body map[string]any
		decodeBody(t, w, &body)
		if body["quantity"] != "quantity is required" || body["menuitem"] != "menuitem is required" {
			t.Errorf("body = %v, want both fields named", body)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
			jsonBody{"menuitem": item.ID, "quantity": 0}, token)
		wantStatus(t, w, http.StatusBadRequest)
		wantBodyField(t, w, "error", "Quantity must be a positive number greater than zero")
	})

	t.Run("negative quantity", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
			jsonBody{"menuitem": item.ID, "quantity": -2}, token)
		wantStatus(t, w, http.StatusBadRequest)
		wantBodyField(t, w, "error", "Quantity must be a positive number greater than zero")
	})

	t.Run("unknown menu item", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
			jsonBody{"menuitem": 9999, "quantity": 1}, token)
		wantStatus(t, w, http.StatusBadRequest)
		wantBodyField(t, w, "error", "Menu item does not exists")
	})

	t.Run("non-integer quantity", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
			jsonBody{"menuitem": item.ID, "quantity": "three"}, token)
		wantStatus(t, w, http.StatusBadRequest)
		wantBodyField(t, w, "error", "Quantity must be a valid integer")
	})
}

func TestCartClearIsIdempotent(t *testing.T) {
	gdb, r := newTestServer(t)
	customer := createUser(t, gdb, "alice")
	token := issueToken(t, gdb, customer)
	item := createMenuItem(t, gdb, "Hummus", 4.00)

	w := doRequest(t, r, http.MethodPost, "/api/cart/menu-items",
		jsonBody{"menuitem": item.ID, "quantity": 1}, token)
	wantStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodDelete, "/api/cart/menu-items", nil, token)
	wantStatus(t, w, http.StatusOK)
	wantBodyField(t, w, "success", "Emptied the cart for the user")

	// Clearing again succeeds and reports the cart was already empty
	w = doRequest(t, r, http.MethodDelete, "/api/cart/menu-items", nil, token)
	wantStatus(t, w, http.StatusOK)
	wantBodyField(t, w, "message", "User's cart is already empty")
}

// The cart belongs to customers: staff roles are denied on every method
func TestCartDeniedForStaff(t *testing.T) {
	gdb, r := newTestServer(t)
	manager := createUser(t, gdb, "mallory", domain.GroupManager)
	crew := createUser(t, gdb, "carl", domain.GroupDeliveryCrew)
	managerToken := issueToken(t, gdb, manager)
	crewToken := issueToken(t, gdb, crew)

	for _, token := range []string{managerToken, crewToken} {
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			w := doRequest(t, r, method, "/api/cart/menu-items", jsonBody{}, token)
			wantStatus(t, w, http.StatusForbidden)
			wantBodyField(t, w, "error", "You do not have permission to perform this action.")
		}
	}
}
