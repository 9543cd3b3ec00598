package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/relay/pkg/relay"
)

func TestParseParam(t *testing.T) {
	tests := []struct {
		decl     string
		expected relay.ParameterSpec
	}{
		{decl: "str: string", expected: relay.Literal("str", relay.StringType)},
		{decl: "id:int", expected: relay.Literal("id", relay.IntType)},
		{decl: "flag: boolean", expected: relay.Literal("flag", relay.BoolType)},
		{decl: "tags: array", expected: relay.Literal("tags", relay.ListType)},
		{decl: "page?: int", expected: relay.Literal("page", relay.IntType).Optional()},
		{decl: "girl: entity Girl", expected: relay.Entity("girl", "Girl")},
		{decl: "author?: entity blog.Author", expected: relay.Entity("author", "blog.Author").Optional()},
		{decl: "model: model InputGirlModel", expected: relay.Model("model", "InputGirlModel")},
		{decl: "  *: string ", expected: relay.Literal("*", relay.StringType)},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			spec, err := ParseParam(tt.decl)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestParseParam_Invalid(t *testing.T) {
	for _, decl := range []string{"", "str", "str string", ": int", "girl: Girl", "girl: entity", "a: int extra", "a!: int"} {
		t.Run(decl, func(t *testing.T) {
			_, err := ParseParam(decl)
			assert.Error(t, err)
		})
	}
}

func TestParseParams_Duplicate(t *testing.T) {
	_, err := ParseParams([]string{"id: int", "id?: string"})
	assert.ErrorContains(t, err, "declared twice")
}

func TestParseParam_RoundTrip(t *testing.T) {
	for _, decl := range []string{"str: string", "page?: int", "girl: entity Girl", "model: model InputGirlModel"} {
		spec, err := ParseParam(decl)
		require.NoError(t, err)
		assert.Equal(t, decl, spec.String())
	}
}
