package symbol

import "testing"

func TestIsReserved(t *testing.T) {
	tests := []struct {
		sym   Symbol
		inYul bool
		want  bool
	}{
		{"contract", false, true},
		{"contract", true, false},
		{"let", false, true},
		{"let", true, true},
		{"leave", false, false},
		{"leave", true, true},
		{"uint256", false, true},
		{"uint256", true, false},
		{"foo", false, false},
		{"foo", true, false},
		{"from", false, false},
		{"error", false, false},
		{"switch", true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.sym), func(t *testing.T) {
			if got := tt.sym.IsReserved(tt.inYul); got != tt.want {
				t.Errorf("IsReserved(%v) = %v, want %v", tt.inYul, got, tt.want)
			}
		})
	}
}

func TestIsElementaryType(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want bool
	}{
		{"address", true},
		{"bool", true},
		{"string", true},
		{"bytes", true},
		{"int", true},
		{"uint", true},
		{"uint8", true},
		{"uint256", true},
		{"int128", true},
		{"bytes1", true},
		{"bytes32", true},
		{"fixed", true},
		{"ufixed", true},
		{"fixed128x18", true},
		{"ufixed8x0", true},
		{"uint7", false},
		{"uint264", false},
		{"uint08", false},
		{"bytes0", false},
		{"bytes33", false},
		{"fixed128x81", false},
		{"fixed128", false},
		{"uintx", false},
		{"foo", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.sym), func(t *testing.T) {
			if got := tt.sym.IsElementaryType(); got != tt.want {
				t.Errorf("IsElementaryType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordTables(t *testing.T) {
	if !Contract.IsUsedKeyword() || Contract.IsUnusedKeyword() {
		t.Errorf("contract should be a used keyword")
	}
	if !Var.IsUnusedKeyword() || Var.IsUsedKeyword() {
		t.Errorf("var should be reserved for future use")
	}
	if !Leave.IsYulKeyword() || Leave.IsKeyword(false) {
		t.Errorf("leave should only be a Yul keyword")
	}
	if !Function.IsKeyword(true) || !Function.IsKeyword(false) {
		t.Errorf("function should be a keyword in both modes")
	}
}
