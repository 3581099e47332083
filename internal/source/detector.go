package source

import "strings"

// BoundaryDetector partitions the ordered, cross-page line stream into
// discrete source segments. It is a small explicit state machine: either no
// segment is open and boundary lines start one, or a segment is open and
// boundary lines at brace depth zero close it and start the next. It must be
// fed lines in document order on a single goroutine.
type BoundaryDetector struct {
	open     *Segment
	pending  []ClassifiedLine
	segments []*Segment
}

// NewBoundaryDetector creates a detector with no open segment.
func NewBoundaryDetector() *BoundaryDetector {
	return &BoundaryDetector{}
}

// Advance feeds one classified line into the state machine.
func (d *BoundaryDetector) Advance(line ClassifiedLine) {
	if d.open == nil {
		switch line.Kind {
		case LineFileHeader:
			d.openSegment(line)
		case LineTypeOpener:
			d.openSegment(line)
		default:
			// Leading package/import lines may precede the header that
			// names the file; buffer them for the next segment.
			d.pending = append(d.pending, line)
		}
		return
	}

	switch line.Kind {
	case LineFileHeader:
		if d.open.depth == 0 {
			d.closeOpen()
			d.openSegment(line)
			return
		}
		// A caption-looking line inside a braced body is just text.
		d.open.append(line.Text)
	case LineTypeOpener:
		if d.open.depth == 0 && d.open.hasOpener {
			// A new top-level type after the previous one closed its
			// braces belongs to a different file.
			d.closeOpen()
			d.openSegment(line)
			return
		}
		if d.open.depth == 0 {
			// The opener belonging to the header that started this segment.
			d.open.hasOpener = true
			if d.open.TypeName == "" {
				d.open.TypeName = line.Token
			}
		}
		d.open.append(line.Text)
	case LinePackageDecl:
		if d.open.Package == "" {
			d.open.Package = line.Token
			d.open.namespaceDecl = strings.HasPrefix(strings.TrimSpace(line.Text), "namespace")
		}
		d.open.append(line.Text)
	default:
		d.open.append(line.Text)
	}
}

// Finish closes any open segment and returns all finalized segments in the
// order their boundaries were detected. Buffered lines that never found a
// boundary become a trailing unnamed segment, so unattributed code is counted
// as dropped downstream instead of vanishing. The detector must not be reused
// afterwards.
func (d *BoundaryDetector) Finish() []*Segment {
	d.closeOpen()
	if len(d.pending) > 0 {
		seg := &Segment{}
		for _, line := range d.pending {
			seg.append(line.Text)
		}
		if !seg.empty() {
			d.segments = append(d.segments, seg)
		}
	}
	d.pending = nil
	return d.segments
}

// openSegment starts a new segment from a boundary line. A header line sets
// the provisional filename and stays out of the body; a type-opener line is
// the first body line.
func (d *BoundaryDetector) openSegment(line ClassifiedLine) {
	seg := &Segment{}
	for _, pre := range d.preamble() {
		if pre.Kind == LinePackageDecl && seg.Package == "" {
			seg.Package = pre.Token
			seg.namespaceDecl = strings.HasPrefix(strings.TrimSpace(pre.Text), "namespace")
		}
		seg.append(pre.Text)
	}
	d.pending = nil

	switch line.Kind {
	case LineFileHeader:
		seg.Filename = line.Token
	case LineTypeOpener:
		seg.hasOpener = true
		seg.TypeName = line.Token
		seg.append(line.Text)
	}
	d.open = seg
}

// closeOpen finalizes the open segment, discarding it when its buffer holds
// nothing but whitespace.
func (d *BoundaryDetector) closeOpen() {
	if d.open == nil {
		return
	}
	if !d.open.empty() {
		d.segments = append(d.segments, d.open)
	}
	d.open = nil
}

// preamble returns the trailing run of buffered lines worth carrying into
// the next segment: package/import declarations, comments, PHP open tags and
// blanks. Anything before that run is page prose, not code, and is dropped.
func (d *BoundaryDetector) preamble() []ClassifiedLine {
	start := len(d.pending)
	for start > 0 {
		prev := d.pending[start-1]
		if !preambleLine(prev) {
			break
		}
		start--
	}
	lines := d.pending[start:]
	// Trim leading blanks so a segment never opens with empty lines.
	for len(lines) > 0 && strings.TrimSpace(lines[0].Text) == "" {
		lines = lines[1:]
	}
	return lines
}

func preambleLine(line ClassifiedLine) bool {
	switch line.Kind {
	case LinePackageDecl, LineImportDecl:
		return true
	}
	trimmed := strings.TrimSpace(line.Text)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "<?php"):
		return true
	case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "/*"), strings.HasPrefix(trimmed, "*"):
		return true
	}
	return false
}
