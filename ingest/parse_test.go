package ingest

import "testing"

func TestParseStatement_SingleLine(t *testing.T) {
	transactions, skipped, err := ParseStatement("24.02.2024 Spotify AB -129,00 NOK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped lines, got %d", skipped)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}

	tx := transactions[0]
	if tx.Date != "2024-02-24" {
		t.Errorf("expected date 2024-02-24, got %s", tx.Date)
	}
	if tx.Recipient != "Spotify AB" {
		t.Errorf("expected recipient 'Spotify AB', got '%s'", tx.Recipient)
	}
	if tx.Amount != -129.00 {
		t.Errorf("expected amount -129.00, got %f", tx.Amount)
	}
}

func TestParseStatement_MixedText(t *testing.T) {
	text := `Kontoutskrift februar 2024

01.02.2024 Netflix -149,00 NOK
Saldo 12 345,67
05.02.2024 Kiwi Grønland -432,50
ikke en transaksjon`

	transactions, skipped, err := ParseStatement(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Recipient != "Netflix" {
		t.Errorf("expected 'Netflix', got '%s'", transactions[0].Recipient)
	}
	if transactions[1].Amount != -432.50 {
		t.Errorf("expected -432.50, got %f", transactions[1].Amount)
	}

	// Header, saldo line and trailing prose are dropped, blank lines are not
	// counted.
	if skipped != 3 {
		t.Errorf("expected 3 skipped lines, got %d", skipped)
	}
}

func TestParseStatement_DotDecimalSeparator(t *testing.T) {
	transactions, _, err := ParseStatement("10.03.2024 Telenor ASA 499.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Amount != 499.00 {
		t.Errorf("expected 499.00, got %f", transactions[0].Amount)
	}
}

func TestParseStatement_ImpossibleDateFails(t *testing.T) {
	_, _, err := ParseStatement("31.02.2024 Spotify AB -129,00 NOK")
	if err == nil {
		t.Fatal("expected error for impossible date")
	}
}

func TestParseStatement_NoMatchesIsNotAnError(t *testing.T) {
	transactions, skipped, err := ParseStatement("ingen transaksjoner her")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected 0 transactions, got %d", len(transactions))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", skipped)
	}
}
