package viewport

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

// 标准视口下按高度适配，宽度为高度乘以宽高比
func TestFitHeightConstrained(t *testing.T) {
	layout := Fit(1000, 1000, 0.707, DefaultConfig())

	assert.InDelta(t, 900.0, layout.Height, epsilon)
	assert.InDelta(t, 900.0*0.707, layout.Width, epsilon)
	assert.LessOrEqual(t, layout.Height, 1000.0)
	assert.LessOrEqual(t, layout.Width, 1000.0)
}

// 窄视口下改以宽度为约束并重算高度
func TestFitWidthConstrained(t *testing.T) {
	layout := Fit(400, 1000, 0.707, DefaultConfig())

	assert.InDelta(t, 360.0, layout.Width, epsilon)
	assert.InDelta(t, 360.0/0.707, layout.Height, epsilon)
}

// 极小视口下两个尺寸都被钳制到最小值
func TestFitMinimumClamp(t *testing.T) {
	layout := Fit(100, 100, 0.707, DefaultConfig())

	assert.Equal(t, DefaultMinWidth, layout.Width)
	assert.Equal(t, DefaultMinHeight, layout.Height)
}

// 非法参数回退到默认值
func TestFitFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	// 非正宽高比回退到默认宽高比
	withDefault := Fit(1000, 1000, DefaultAspectRatio, cfg)
	assert.Equal(t, withDefault, Fit(1000, 1000, 0, cfg))
	assert.Equal(t, withDefault, Fit(1000, 1000, -1, cfg))

	// 越界的边距比例回退到默认值
	badMargin := cfg
	badMargin.MarginFactor = 1.5
	assert.Equal(t, withDefault, Fit(1000, 1000, DefaultAspectRatio, badMargin))

	// 负视口按零处理，结果落在最小值
	layout := Fit(-10, -10, DefaultAspectRatio, cfg)
	assert.Equal(t, cfg.MinWidth, layout.Width)
	assert.Equal(t, cfg.MinHeight, layout.Height)
}

// 相同输入永远得到相同尺寸
func TestPropertyFitDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("identical inputs yield identical layout", prop.ForAll(
		func(w, h, r float64) bool {
			cfg := DefaultConfig()
			first := Fit(w, h, r, cfg)
			second := Fit(w, h, r, cfg)
			return first == second
		},
		gen.Float64Range(0, 5000),
		gen.Float64Range(0, 5000),
		gen.Float64Range(0.1, 3),
	))

	properties.TestingRun(t)
}

// 未触发最小值钳制时页面不超出边距预算
func TestPropertyFitStaysInsideMargins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("page fits the margin budget unless clamped", prop.ForAll(
		func(w, h, r float64) bool {
			cfg := DefaultConfig()
			layout := Fit(w, h, r, cfg)

			widthBudget := w * cfg.MarginFactor
			heightBudget := h * cfg.MarginFactor

			widthOk := layout.Width <= widthBudget+epsilon || layout.Width == cfg.MinWidth
			heightOk := layout.Height <= heightBudget+epsilon || layout.Height == cfg.MinHeight
			return widthOk && heightOk
		},
		gen.Float64Range(50, 5000),
		gen.Float64Range(50, 5000),
		gen.Float64Range(0.1, 3),
	))

	properties.TestingRun(t)
}

// 未触发最小值钳制时宽高比保持不变
func TestPropertyFitPreservesAspectRatio(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("width over height equals the requested ratio", prop.ForAll(
		func(w, h, r float64) bool {
			cfg := DefaultConfig()
			layout := Fit(w, h, r, cfg)

			// 被钳制的结果不保证比例
			if layout.Width == cfg.MinWidth || layout.Height == cfg.MinHeight {
				return true
			}
			return math.Abs(layout.Width/layout.Height-r) < 1e-6
		},
		gen.Float64Range(500, 5000),
		gen.Float64Range(500, 5000),
		gen.Float64Range(0.3, 2),
	))

	properties.TestingRun(t)
}
