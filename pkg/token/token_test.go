package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarNameAndType(t *testing.T) {
	tests := []struct {
		value    string
		wantName string
		wantType string
	}{
		{"Score", "score", ""},
		{"name$", "name", "$"},
		{"COUNT%", "count", "%"},
		{"x!", "x", "!"},
		{"big#", "big", "#"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			tk := New(IDENTIFIER, tt.value, Position{})
			assert.Equal(t, tt.wantName, tk.VarName())
			assert.Equal(t, tt.wantType, tk.VarType())
		})
	}
}

func TestQualified(t *testing.T) {
	a := New(IDENTIFIER, "Score$", NewPosition(1, 1, "Score$=1", "/p/main.dmx", 3))
	b := a.At(NewPosition(4, 1, "score", "/p/lib.dmx", 6))
	assert.Equal(t, "score@/p/main.dmx", a.Qualified())
	assert.Equal(t, "score@/p/lib.dmx", b.Qualified())
}

func TestTokenCopies(t *testing.T) {
	tk := New(C_JUMP, "goto", Position{Line: 2, Col: 5})
	assert.True(t, tk.Is("GOTO"))
	assert.Equal(t, "GOTO", tk.Upper())

	other := tk.WithKind(LABEL_JUMP).WithValue("10")
	assert.Equal(t, C_JUMP, tk.Kind)
	assert.Equal(t, "goto", tk.Value)
	assert.Equal(t, LABEL_JUMP, other.Kind)
	assert.Equal(t, "10", other.Value)
	assert.Equal(t, tk.Pos, other.Pos)
}

func TestPosition(t *testing.T) {
	p := NewPosition(3, 5, "    print 1", "/p/game.dmx", 10)
	assert.Equal(t, 4, p.Offset)
	assert.Equal(t, "game.dmx:(3,5)", p.String())
	assert.Equal(t, 9, p.WithCol(9).Col)
	assert.Equal(t, 7, p.WithLine(7).Line)
	assert.Equal(t, p.Text, p.WithLine(7).Text)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, "LABEL_EXIT", LABEL_EXIT.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())
	assert.True(t, STRING.IsLiteral())
	assert.True(t, DATA_FIELD.IsLiteral())
	assert.False(t, IDENTIFIER.IsLiteral())
	assert.True(t, FUNC_CALL.IsPlaceholder())
	assert.False(t, LABEL_LINE.IsPlaceholder())
}
