package aladhan

// Response is the top-level Al Adhan API response. A payload code other than
// 200 signals a failed computation even when transport succeeded.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the prayer timings and request metadata.
type Data struct {
	Timings Timings `json:"timings"`
	Meta    Meta    `json:"meta"`
}

// Timings contains event times as 24-hour "HH:MM" strings. The API may
// append a timezone annotation like " (GMT+0)" which is stripped during
// normalization.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Meta echoes the request parameters back.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
}

// MethodInfo identifies the calculation method used.
type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
