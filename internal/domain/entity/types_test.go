package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec2_Normalized(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	n := v.Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
	assert.Equal(t, Vec2{}, Vec2{}.Normalized())
	assert.Equal(t, 5.0, v.Len())
}

func TestDirection_Vector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vec2
		name string
	}{
		{DirRight, Vec2{X: 1}, "Right"},
		{DirLeft, Vec2{X: -1}, "Left"},
		{DirUp, Vec2{Y: 1}, "Up"},
		{DirDown, Vec2{Y: -1}, "Down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dir.Vector())
			assert.Equal(t, tt.name, tt.dir.String())
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{Center: Vec2{X: 0, Y: 0}, Size: Vec2{X: 2, Y: 2}}

	assert.True(t, a.Overlaps(Rect{Center: Vec2{X: 1.5, Y: 0}, Size: Vec2{X: 2, Y: 2}}))
	assert.False(t, a.Overlaps(Rect{Center: Vec2{X: 2, Y: 0}, Size: Vec2{X: 2, Y: 2}}), "touching edges")
	assert.False(t, a.Overlaps(Rect{Center: Vec2{X: 0, Y: 5}, Size: Vec2{X: 2, Y: 2}}))
}

func TestRect_IntersectsCircle(t *testing.T) {
	r := RectFromMinMax(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 1})

	assert.True(t, r.IntersectsCircle(Vec2{X: 5, Y: 1.2}, 0.25))
	assert.False(t, r.IntersectsCircle(Vec2{X: 5, Y: 1.5}, 0.25))
	assert.True(t, r.IntersectsCircle(Vec2{X: 5, Y: 0.5}, 0.01), "center inside")
}

func TestRect_IntersectsSegment(t *testing.T) {
	wall := RectFromMinMax(Vec2{X: 2, Y: 0}, Vec2{X: 3, Y: 10})

	tests := []struct {
		name   string
		origin Vec2
		dir    Vec2
		dist   float64
		want   bool
	}{
		{"hits right", Vec2{X: 1, Y: 5}, Vec2{X: 1}, 1.5, true},
		{"too short", Vec2{X: 1, Y: 5}, Vec2{X: 1}, 0.5, false},
		{"wrong way", Vec2{X: 1, Y: 5}, Vec2{X: -1}, 5, false},
		{"above", Vec2{X: 1, Y: 11}, Vec2{X: 1}, 5, false},
		{"diagonal", Vec2{X: 0, Y: 0}, Vec2{X: 1, Y: 1}, 5, true},
		{"zero dir inside", Vec2{X: 2.5, Y: 5}, Vec2{}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wall.IntersectsSegment(tt.origin, tt.dir, tt.dist))
		})
	}
}

func TestParseStatusKind(t *testing.T) {
	for k, name := range statusNames {
		got, err := ParseStatusKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, name, k.String())
	}

	_, err := ParseStatusKind("jump")
	assert.ErrorIs(t, err, ErrUnknownStatusKind)
}

func TestHealth_Percent(t *testing.T) {
	assert.Equal(t, 0.7, Health{Current: 70, Max: 100}.Percent())
	assert.Equal(t, 0.0, Health{Current: 10, Max: 0}.Percent())
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(3))
	assert.Equal(t, -1.0, Sign(-0.1))
	assert.Equal(t, 0.0, Sign(0))
	assert.False(t, math.Signbit(Sign(0)))
}

func TestUnlockedAbilities_Apply(t *testing.T) {
	ab := UnlockedAbilities{WallClimb: true}.Apply()
	assert.True(t, ab.Jump)
	assert.True(t, ab.WallCling)
	assert.True(t, ab.WallJump)
	assert.False(t, ab.DoubleJump)
	assert.False(t, ab.Glide)
}

func TestNewSaveSnapshot(t *testing.T) {
	s := NewSaveSnapshot()
	assert.Equal(t, 100, s.MaxHealth)
	assert.Nil(t, s.CurrentHealth)
	assert.Equal(t, 1, s.CurrentLevel)
	assert.NotNil(t, s.Inventory)
}

func TestStage_Sensors(t *testing.T) {
	stage := &Stage{
		Solids: []Solid{
			{Rect: RectFromMinMax(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 1}), Layers: []string{"ground"}},
			{Rect: RectFromMinMax(Vec2{X: 10, Y: 0}, Vec2{X: 11, Y: 10}), Layers: []string{"wall", "ground"}},
		},
	}

	assert.True(t, stage.OverlapCircle(Vec2{X: 5, Y: 1.1}, 0.2, "ground"))
	assert.False(t, stage.OverlapCircle(Vec2{X: 5, Y: 1.1}, 0.2, "wall"))
	assert.True(t, stage.Raycast(Vec2{X: 9, Y: 5}, Vec2{X: 1}, 2, "wall"))
	assert.False(t, stage.Raycast(Vec2{X: 9, Y: 5}, Vec2{X: -1}, 2, "wall"))
	assert.Len(t, stage.SolidsIn("wall"), 1)
	assert.Len(t, stage.SolidsIn(""), 2)
}
