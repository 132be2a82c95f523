package webvtt

import (
	"strings"
	"unicode"
)

// Direction is the base text direction of a cue.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// code points of strongly right-to-left scripts
var strongRTL = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x05be, Hi: 0x05be, Stride: 1},
		{Lo: 0x05c0, Hi: 0x05c0, Stride: 1},
		{Lo: 0x05c3, Hi: 0x05c3, Stride: 1},
		{Lo: 0x05c6, Hi: 0x05c6, Stride: 1},
		{Lo: 0x05d0, Hi: 0x05ea, Stride: 1},
		{Lo: 0x05f0, Hi: 0x05f4, Stride: 1},
		{Lo: 0x0608, Hi: 0x0608, Stride: 1},
		{Lo: 0x060b, Hi: 0x060b, Stride: 1},
		{Lo: 0x060d, Hi: 0x060d, Stride: 1},
		{Lo: 0x061b, Hi: 0x061b, Stride: 1},
		{Lo: 0x061e, Hi: 0x064a, Stride: 1},
		{Lo: 0x066d, Hi: 0x066f, Stride: 1},
		{Lo: 0x0671, Hi: 0x06d5, Stride: 1},
		{Lo: 0x06e5, Hi: 0x06e6, Stride: 1},
		{Lo: 0x06ee, Hi: 0x06ef, Stride: 1},
		{Lo: 0x06fa, Hi: 0x070d, Stride: 1},
		{Lo: 0x070f, Hi: 0x0710, Stride: 1},
		{Lo: 0x0712, Hi: 0x072f, Stride: 1},
		{Lo: 0x074d, Hi: 0x07a5, Stride: 1},
		{Lo: 0x07b1, Hi: 0x07b1, Stride: 1},
		{Lo: 0x07c0, Hi: 0x07ea, Stride: 1},
		{Lo: 0x07f4, Hi: 0x07f5, Stride: 1},
		{Lo: 0x07fa, Hi: 0x07fa, Stride: 1},
		{Lo: 0x0800, Hi: 0x0815, Stride: 1},
		{Lo: 0x081a, Hi: 0x081a, Stride: 1},
		{Lo: 0x0824, Hi: 0x0824, Stride: 1},
		{Lo: 0x0828, Hi: 0x0828, Stride: 1},
		{Lo: 0x0830, Hi: 0x083e, Stride: 1},
		{Lo: 0x0840, Hi: 0x0858, Stride: 1},
		{Lo: 0x085e, Hi: 0x085e, Stride: 1},
		{Lo: 0x08a0, Hi: 0x08a0, Stride: 1},
		{Lo: 0x08a2, Hi: 0x08ac, Stride: 1},
		{Lo: 0x200f, Hi: 0x200f, Stride: 1},
		{Lo: 0xfb1d, Hi: 0xfb1d, Stride: 1},
		{Lo: 0xfb1f, Hi: 0xfb28, Stride: 1},
		{Lo: 0xfb2a, Hi: 0xfb36, Stride: 1},
		{Lo: 0xfb38, Hi: 0xfb3c, Stride: 1},
		{Lo: 0xfb3e, Hi: 0xfb3e, Stride: 1},
		{Lo: 0xfb40, Hi: 0xfb41, Stride: 1},
		{Lo: 0xfb43, Hi: 0xfb44, Stride: 1},
		{Lo: 0xfb46, Hi: 0xfbc1, Stride: 1},
		{Lo: 0xfbd3, Hi: 0xfd3d, Stride: 1},
		{Lo: 0xfd50, Hi: 0xfd8f, Stride: 1},
		{Lo: 0xfd92, Hi: 0xfdc7, Stride: 1},
		{Lo: 0xfdf0, Hi: 0xfdfc, Stride: 1},
		{Lo: 0xfe70, Hi: 0xfe74, Stride: 1},
		{Lo: 0xfe76, Hi: 0xfefc, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10800, Hi: 0x10805, Stride: 1},
		{Lo: 0x10808, Hi: 0x10808, Stride: 1},
		{Lo: 0x1080a, Hi: 0x10835, Stride: 1},
		{Lo: 0x10837, Hi: 0x10838, Stride: 1},
		{Lo: 0x1083c, Hi: 0x1083c, Stride: 1},
		{Lo: 0x1083f, Hi: 0x10855, Stride: 1},
		{Lo: 0x10857, Hi: 0x1085f, Stride: 1},
		{Lo: 0x10900, Hi: 0x1091b, Stride: 1},
		{Lo: 0x10920, Hi: 0x10939, Stride: 1},
		{Lo: 0x1093f, Hi: 0x1093f, Stride: 1},
		{Lo: 0x10980, Hi: 0x109b7, Stride: 1},
		{Lo: 0x109be, Hi: 0x109bf, Stride: 1},
		{Lo: 0x10a00, Hi: 0x10a00, Stride: 1},
		{Lo: 0x10a10, Hi: 0x10a13, Stride: 1},
		{Lo: 0x10a15, Hi: 0x10a17, Stride: 1},
		{Lo: 0x10a19, Hi: 0x10a33, Stride: 1},
		{Lo: 0x10a40, Hi: 0x10a47, Stride: 1},
		{Lo: 0x10a50, Hi: 0x10a58, Stride: 1},
		{Lo: 0x10a60, Hi: 0x10a7f, Stride: 1},
		{Lo: 0x10b00, Hi: 0x10b35, Stride: 1},
		{Lo: 0x10b40, Hi: 0x10b55, Stride: 1},
		{Lo: 0x10b58, Hi: 0x10b72, Stride: 1},
		{Lo: 0x10b78, Hi: 0x10b7f, Stride: 1},
		{Lo: 0x10c00, Hi: 0x10c48, Stride: 1},
		{Lo: 0x1ee00, Hi: 0x1ee03, Stride: 1},
		{Lo: 0x1ee05, Hi: 0x1ee1f, Stride: 1},
		{Lo: 0x1ee21, Hi: 0x1ee22, Stride: 1},
		{Lo: 0x1ee24, Hi: 0x1ee24, Stride: 1},
		{Lo: 0x1ee27, Hi: 0x1ee27, Stride: 1},
		{Lo: 0x1ee29, Hi: 0x1ee32, Stride: 1},
		{Lo: 0x1ee34, Hi: 0x1ee37, Stride: 1},
		{Lo: 0x1ee39, Hi: 0x1ee39, Stride: 1},
		{Lo: 0x1ee3b, Hi: 0x1ee3b, Stride: 1},
		{Lo: 0x1ee42, Hi: 0x1ee42, Stride: 1},
		{Lo: 0x1ee47, Hi: 0x1ee47, Stride: 1},
		{Lo: 0x1ee49, Hi: 0x1ee49, Stride: 1},
		{Lo: 0x1ee4b, Hi: 0x1ee4b, Stride: 1},
		{Lo: 0x1ee4d, Hi: 0x1ee4f, Stride: 1},
		{Lo: 0x1ee51, Hi: 0x1ee52, Stride: 1},
		{Lo: 0x1ee54, Hi: 0x1ee54, Stride: 1},
		{Lo: 0x1ee57, Hi: 0x1ee57, Stride: 1},
		{Lo: 0x1ee59, Hi: 0x1ee59, Stride: 1},
		{Lo: 0x1ee5b, Hi: 0x1ee5b, Stride: 1},
		{Lo: 0x1ee5d, Hi: 0x1ee5d, Stride: 1},
		{Lo: 0x1ee5f, Hi: 0x1ee5f, Stride: 1},
		{Lo: 0x1ee61, Hi: 0x1ee62, Stride: 1},
		{Lo: 0x1ee64, Hi: 0x1ee64, Stride: 1},
		{Lo: 0x1ee67, Hi: 0x1ee6a, Stride: 1},
		{Lo: 0x1ee6c, Hi: 0x1ee72, Stride: 1},
		{Lo: 0x1ee74, Hi: 0x1ee77, Stride: 1},
		{Lo: 0x1ee79, Hi: 0x1ee7c, Stride: 1},
		{Lo: 0x1ee7e, Hi: 0x1ee7e, Stride: 1},
		{Lo: 0x1ee80, Hi: 0x1ee89, Stride: 1},
		{Lo: 0x1ee8b, Hi: 0x1ee9b, Stride: 1},
		{Lo: 0x1eea1, Hi: 0x1eea3, Stride: 1},
		{Lo: 0x1eea5, Hi: 0x1eea9, Stride: 1},
		{Lo: 0x1eeab, Hi: 0x1eebb, Stride: 1},
		{Lo: 0x10fffd, Hi: 0x10fffd, Stride: 1},
	},
}

const paragraphBreaks = "\n\r\u2028\u2029"

// DetermineDirection reports RTL when the first paragraph of the tree holds a
// strongly right-to-left character. Scanning stops after the first text run
// that contains a line or paragraph break.
func DetermineDirection(root *Node) Direction {
	if root == nil {
		return LTR
	}

	var stack []*Node
	push := func(n *Node) {
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	push(root)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		text := n.TextContent()
		if text == "" {
			if n.Kind != NodeRuby {
				push(n)
			}
			continue
		}
		if i := strings.IndexAny(text, paragraphBreaks); i >= 0 {
			text = text[:i]
			stack = nil
		}
		for _, r := range text {
			if unicode.Is(strongRTL, r) {
				return RTL
			}
		}
	}
	return LTR
}
