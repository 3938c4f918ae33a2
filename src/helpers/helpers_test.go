package helpers

import "testing"

func TestParseCSVList(t *testing.T) {
	got := ParseCSVList(" a, b ,, c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
	if ParseCSVList("  ") != nil {
		t.Error("expected nil for blank input")
	}
}

func TestParseChatIDs(t *testing.T) {
	ids, err := ParseChatIDs("-1001234,42")
	if err != nil {
		t.Fatalf("ParseChatIDs returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != -1001234 || ids[1] != 42 {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if _, err := ParseChatIDs("12,abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
