package trend

// FromChart pulls the "This home" valuation series out of a graph-charts
// response document. The shape is DataPoints -> homeValueChartData -> a list
// of named series each carrying points with x (unix millis) and y (value).
func FromChart(doc map[string]any) ([]Point, error) {
	if len(doc) == 0 {
		return nil, ErrInsufficientData
	}

	root := doc
	if inner, ok := doc["DataPoints"].(map[string]any); ok {
		root = inner
	}

	series, ok := root["homeValueChartData"].([]any)
	if !ok {
		return nil, ErrInsufficientData
	}

	var raw []any
	for _, s := range series {
		entry, ok := s.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		pts, ok := entry["points"].([]any)
		if !ok {
			continue
		}
		if name == "This home" {
			raw = pts
			break
		}
		if raw == nil {
			raw = pts // fall back to the first series with points
		}
	}
	if raw == nil {
		return nil, ErrInsufficientData
	}

	points := make([]Point, 0, len(raw))
	for _, p := range raw {
		entry, ok := p.(map[string]any)
		if !ok {
			continue
		}
		x, okX := toFloat(entry["x"])
		y, okY := toFloat(entry["y"])
		if !okX || !okY {
			continue
		}
		points = append(points, Point{Timestamp: int64(x), Value: y})
	}
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}

	return points, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
