package compiler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/dialect"
	"badig/pkg/token"
)

func variable(name string) token.Token {
	return token.New(token.IDENTIFIER, name, token.NewPosition(1, 1, name, testFile, 3))
}

func TestAllocateExhausts(t *testing.T) {
	desc := dialect.NewMSX().Description()
	v := NewVars(desc.VarMax)

	seen := map[string]bool{}
	for i := 0; i < desc.VarMax; i++ {
		short, err := v.allocate(variable(fmt.Sprintf("long%d", i)), desc, nil)
		require.NoError(t, err)
		require.False(t, seen[short], "short name %s given twice", short)
		seen[short] = true
	}
	assert.True(t, seen["aa"])
	assert.True(t, seen["zz"])

	_, err := v.allocate(variable("onemore"), desc, nil)
	requireError(t, err, "Too many variables used (max=676): onemore")
}

func TestAllocateSkipsReserved(t *testing.T) {
	desc := dialect.NewMSX().Description()
	v := NewVars(desc.VarMax)

	for i := 0; ; i++ {
		short, err := v.allocate(variable(fmt.Sprintf("long%d", i)), desc, desc.IsReserved)
		if err != nil {
			break
		}
		assert.False(t, desc.IsReserved(short), "reserved word %s allocated", short)
	}
}

func TestAllocateStable(t *testing.T) {
	desc := dialect.NewMSX().Description()
	v := NewVars(desc.VarMax)

	first, err := v.allocate(variable("counter"), desc, desc.IsReserved)
	require.NoError(t, err)
	again, err := v.allocate(variable("counter"), desc, desc.IsReserved)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := v.allocate(variable("total"), desc, desc.IsReserved)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestAllocateAvoidsHardNames(t *testing.T) {
	desc := dialect.NewMSX().Description()
	v := NewVars(desc.VarMax)
	v.hardShort["zz"] = true
	v.keepLong(variable("zylophone"))

	short, err := v.allocate(variable("counter"), desc, nil)
	require.NoError(t, err)
	assert.Equal(t, "zx", short)
}

func TestKeepAndDeclareErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"keep short", "~ab = 1", "Can't use ~ on a short named variable: ab"},
		{"declared twice", "declare score:sc, score:sd", "Long variable already declared"},
		{"short taken", "declare score:sc, speed:sc", "Short variable already declared"},
		{"bad short", "declare score:s1x", "Invalid declared short variable"},
		{"reserved", "declare print", "Variable is a reserved keyword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileText(t, "msx", tt.src, testOptions())
			requireError(t, err, tt.msg)
		})
	}
}
