// Package viewport computes the page size a flipbook reader should render for
// a given viewport. The computation is pure: identical inputs always produce
// identical dimensions, so it can be re-run on every resize and fullscreen
// toggle.
// Package viewport 计算翻页阅读器在给定视口下应渲染的单页尺寸。
// 计算是纯函数：相同输入永远得到相同尺寸，可在每次窗口变化与全屏切换时重复执行。
package viewport

// DefaultMarginFactor is the fraction of the viewport left for the page
// DefaultMarginFactor 是页面可占用的视口比例
const DefaultMarginFactor = 0.9

// DefaultAspectRatio is the portrait width:height ratio of standard documents
// DefaultAspectRatio 是标准文档的纵向宽高比
const DefaultAspectRatio = 0.707

// DefaultMinWidth and DefaultMinHeight keep the page legible on tiny viewports
// DefaultMinWidth 与 DefaultMinHeight 保证极小视口下页面仍可阅读
const (
	DefaultMinWidth  = 240.0
	DefaultMinHeight = 320.0
)

// Config carries the display tuning for the page-fit computation
// Config 携带页面适配计算的展示参数
type Config struct {
	MarginFactor float64 `yaml:"margin-factor" json:"marginFactor" default:"0.9"`
	MinWidth     float64 `yaml:"min-width" json:"minWidth" default:"240"`
	MinHeight    float64 `yaml:"min-height" json:"minHeight" default:"320"`
}

// DefaultConfig returns the standard display tuning
// DefaultConfig 返回标准展示参数
func DefaultConfig() Config {
	return Config{
		MarginFactor: DefaultMarginFactor,
		MinWidth:     DefaultMinWidth,
		MinHeight:    DefaultMinHeight,
	}
}

// Layout is a computed page size in CSS pixels
// Layout 是计算得到的单页尺寸，单位为 CSS 像素
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fit computes the largest page of the given aspect ratio that fits the
// viewport with margins. Height is fitted first; when the resulting width
// overflows the horizontal budget, width becomes the constraint and height is
// recomputed from it. Both dimensions are then clamped to the configured
// minimums.
// Fit 计算在带边距的视口内能容纳的给定宽高比的最大页面。先按高度适配；
// 当得到的宽度超出水平预算时改以宽度为约束并据此重算高度，最后将两个尺寸
// 钳制到配置的最小值。
func Fit(viewportWidth, viewportHeight, aspectRatio float64, cfg Config) Layout {
	marginFactor := cfg.MarginFactor
	if marginFactor <= 0 || marginFactor > 1 {
		marginFactor = DefaultMarginFactor
	}
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	height := viewportHeight * marginFactor
	width := height * aspectRatio

	if maxWidth := viewportWidth * marginFactor; width > maxWidth {
		width = maxWidth
		height = width / aspectRatio
	}

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if height < cfg.MinHeight {
		height = cfg.MinHeight
	}

	return Layout{Width: width, Height: height}
}
