package chart

// palette is the fixed 15-color segment palette, cycled by row order.
var palette = [...]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#aec7e8", "#ffbb78", "#98df8a", "#ff9896", "#c5b0d5",
}

// SegmentColor maps a segment's row index to its palette color. The mapping
// is a pure function of the index, so chart assembly stays reentrant.
func SegmentColor(index int) string {
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}
