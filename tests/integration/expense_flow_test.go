package integration

import (
	"net/http"
	"testing"
)

func TestExpenseFlow_CRUD(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "crud@test.com", "password123")

	// Step 1: Create
	id := app.createExpense(t, token, 25.50, "Food & Dining", "Groceries", "2024-03-15")

	// Step 2: Get it back
	rec := app.request("GET", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	expense := data(t, rec)
	if expense["amount"] != 25.50 {
		t.Errorf("expected amount 25.50, got %v", expense["amount"])
	}
	if expense["category"] != "Food & Dining" {
		t.Errorf("expected Food & Dining, got %v", expense["category"])
	}
	if expense["date"] != "2024-03-15" {
		t.Errorf("expected 2024-03-15, got %v", expense["date"])
	}

	// Step 3: Partial update changes only the amount
	rec = app.request("PUT", "/api/v1/expenses/"+id, `{"amount":30.00}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := data(t, rec)
	if updated["amount"] != 30.00 {
		t.Errorf("expected 30.00, got %v", updated["amount"])
	}
	if updated["description"] != "Groceries" {
		t.Errorf("description must survive a partial update, got %v", updated["description"])
	}

	// Step 4: Delete
	rec = app.request("DELETE", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 5: Gone
	rec = app.request("GET", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	// Step 6: Deleting again is still 404, not an error
	rec = app.request("DELETE", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_ValidationAtBoundary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "validation@test.com", "password123")

	cases := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount":0,"category":"Food & Dining","description":"x","date":"2024-03-15"}`},
		{"negative amount", `{"amount":-1,"category":"Food & Dining","description":"x","date":"2024-03-15"}`},
		{"unknown category", `{"amount":10,"category":"Bribes","description":"x","date":"2024-03-15"}`},
		{"empty description", `{"amount":10,"category":"Food & Dining","description":"","date":"2024-03-15"}`},
		{"bad date", `{"amount":10,"category":"Food & Dining","description":"x","date":"03/15/2024"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/expenses", tc.body, token)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}

	// Nothing invalid was stored.
	rec := app.request("GET", "/api/v1/expenses", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if list, ok := result["data"].([]interface{}); !ok || len(list) != 0 {
		t.Errorf("expected empty collection, got %v", result["data"])
	}
}

func TestExpenseFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _ := app.registerUser(t, "bob@test.com", "password123")

	aliceID := app.createExpense(t, aliceToken, 10, "Travel", "Flight", "2024-03-01")
	app.createExpense(t, bobToken, 20, "Shopping", "Shoes", "2024-03-02")

	// Bob's list never shows Alice's expense
	rec := app.request("GET", "/api/v1/expenses", "", bobToken)
	result := parseJSON(t, rec)
	list := result["data"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("expected 1 expense for bob, got %d", len(list))
	}
	if list[0].(map[string]interface{})["description"] != "Shoes" {
		t.Errorf("expected bob's own expense, got %v", list[0])
	}

	// Bob cannot read, update, or delete Alice's expense
	rec = app.request("GET", "/api/v1/expenses/"+aliceID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 reading another user's expense, got %d", rec.Code)
	}
	rec = app.request("PUT", "/api/v1/expenses/"+aliceID, `{"amount":1}`, bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating another user's expense, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/expenses/"+aliceID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting another user's expense, got %d", rec.Code)
	}

	// Alice's expense is untouched
	rec = app.request("GET", "/api/v1/expenses/"+aliceID, "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("alice lost her expense: %d", rec.Code)
	}
}

func TestExpenseFlow_Filters(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "filters@test.com", "password123")

	app.createExpense(t, token, 10, "Travel", "January trip", "2024-01-15")
	app.createExpense(t, token, 20, "Travel", "February trip", "2024-02-15")
	app.createExpense(t, token, 30, "Shopping", "February shoes", "2024-02-20")

	// Inclusive date range
	rec := app.request("GET", "/api/v1/expenses?from=2024-02-01&to=2024-02-20", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("range query failed: %d %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)["data"].([]interface{})
	if len(list) != 2 {
		t.Errorf("expected 2 expenses in range, got %d", len(list))
	}

	// Category filter
	rec = app.request("GET", "/api/v1/expenses?category=Travel", "", token)
	list = parseJSON(t, rec)["data"].([]interface{})
	if len(list) != 2 {
		t.Errorf("expected 2 Travel expenses, got %d", len(list))
	}

	// Grouping
	rec = app.request("GET", "/api/v1/expenses?group_by=category", "", token)
	grouped := data(t, rec)
	if len(grouped["Travel"].([]interface{})) != 2 {
		t.Errorf("expected 2 expenses under Travel, got %v", grouped["Travel"])
	}
	if len(grouped["Shopping"].([]interface{})) != 1 {
		t.Errorf("expected 1 expense under Shopping, got %v", grouped["Shopping"])
	}

	// A lone range endpoint is rejected
	rec = app.request("GET", "/api/v1/expenses?to=2024-02-20", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for to without from, got %d", rec.Code)
	}
}
