// Package mockapi serves fake AWEKAS current-conditions reports for demos
// and manual testing of the CLI.
//
// The weather drifts slowly between requests. Special keys trigger the API's
// error responses:
//
//	quota    -> "maximum quota exceeded"
//	inactive -> "AWEKAS plus not active"
//	invalid  -> "invalid key"
//	flaky    -> alternates between 503 and a good report
package mockapi

import (
	"encoding/json"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var keyErrors = map[string]string{
	"quota":    "maximum quota exceeded",
	"inactive": "AWEKAS plus not active",
	"invalid":  "invalid key",
}

var forecastTexts = map[string][]string{
	"de": {"sonnig", "heiter", "bewölkt", "Regen", "Gewitter", "Schnee"},
	"en": {"sunny", "fair", "cloudy", "rain", "thunderstorms", "snow"},
	"fr": {"ensoleillé", "beau", "nuageux", "pluie", "orages", "neige"},
	"es": {"soleado", "despejado", "nublado", "lluvia", "tormentas", "nieve"},
	"nl": {"zonnig", "helder", "bewolkt", "regen", "onweer", "sneeuw"},
}

// Server is an http.Handler that mimics /current.php.
type Server struct {
	logger *slog.Logger

	mu          sync.Mutex
	rng         *rand.Rand
	temperature float64
	pressure    float64
	windDir     float64
	requests    map[string]int
}

// New creates a Server with a random starting state.
func New(logger *slog.Logger) *Server {
	return &Server{
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		temperature: 14,
		pressure:    1013,
		windDir:     200,
		requests:    make(map[string]int),
	}
}

// ServeHTTP answers GET /current.php?key=...&lng=...
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	lang := r.URL.Query().Get("lng")

	s.mu.Lock()
	s.requests[key]++
	count := s.requests[key]
	s.mu.Unlock()

	s.logger.Info("request", "key", key, "lng", lang, "count", count)

	if key == "flaky" && count%2 == 1 {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	var body any
	if msg, ok := keyErrors[key]; ok {
		body = map[string]any{"error": msg}
	} else {
		body = s.report(lang)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) report(lang string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.temperature += s.rng.Float64() - 0.5
	s.pressure += (s.rng.Float64() - 0.5) / 2
	s.windDir = math.Mod(s.windDir+s.rng.Float64()*40-20+360, 360)
	windSpeed := round(5 + s.rng.Float64()*20)

	now := time.Now().Unix()
	texts, ok := forecastTexts[lang]
	if !ok {
		texts = forecastTexts["en"]
	}

	forecast := make(map[string]any, 6)
	for day := 0; day < 6; day++ {
		code := s.rng.Intn(len(texts))
		forecast["day"+string(rune('0'+day))] = map[string]any{
			"fc_code":             code,
			"fc_icon":             code + 1,
			"fc_text":             texts[code],
			"fc_temp_min":         round(s.temperature - 5 + float64(day)/2),
			"fc_temp_max":         round(s.temperature + 4 + float64(day)/2),
			"fc_rainsum":          round(float64(code) * 1.5),
			"fc_rain_possibility": code * 15,
		}
	}

	return map[string]any{
		"error":     nil,
		"fetchdate": now,
		"current": map[string]any{
			"datatimestamp": now - 30,
			"timeoffset":    3600,
			"temperature":   round(s.temperature),
			"dewpoint":      round(s.temperature - 4),
			"humidity":      70 + s.rng.Intn(20),
			"airpress_rel":  round(s.pressure),
			"precipitation": 0,
			"rainrate":      0,
			"itsraining":    0,
			"windspeed":     windSpeed,
			"gustspeed":     round(windSpeed * 1.6),
			"winddirection": round(s.windDir),
			"uv":            2,
			"solar":         240,
			"snowheight":    nil,
		},
		"1h": map[string]any{
			"precipitation_1h": 0,
		},
		"day": map[string]any{
			"temp_min":          round(s.temperature - 6),
			"temp_min_ts":       now - 6*3600,
			"temp_max":          round(s.temperature + 2),
			"temp_max_ts":       now - 2*3600,
			"winddir_max":       round(s.windDir),
			"gustdir_max":       round(math.Mod(s.windDir+15, 360)),
			"precipitation_24h": 1.2,
		},
		"forecast": forecast,
	}
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}
