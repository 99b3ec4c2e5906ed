package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%who%", LikePattern("Who"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, LikePattern(`C:\x`))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Who invented Peanut Butter?", "peanut"))
	assert.True(t, ContainsFold("Élan vital?", "é"))
	assert.True(t, ContainsFold("éclair recipe?", "ÉCLAIR"))
	assert.True(t, ContainsFold("100% cotton", "0%"))
	assert.False(t, ContainsFold("Brazil", "brasil"))
}
