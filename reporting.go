package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/gr-butler/drumpads/db/postgres"
	"github.com/gr-butler/drumpads/env"
	logger "github.com/sirupsen/logrus"
)

type sessionStats struct {
	Station    string `url:"station,omitempty"`
	DateString string `url:"dateutc,omitempty"`
	HitsA      uint64 `url:"hits_a"`
	HitsB      uint64 `url:"hits_b"`
	PeakA      uint32 `url:"peak_a_mv"`
	PeakB      uint32 `url:"peak_b_mv"`
}

// Reporting called as a go routine:
// * write per pad hit counts to the db
// * push session stats to the configured endpoint
func (d *drumstation) Reporting(testMode bool) {
	prev := make([]uint64, len(d.pads))
	for t := range time.Tick(time.Minute) {
		func() {
			if t.Minute()%env.ReportFreqMin != 0 {
				return
			}

			for i, p := range d.pads {
				total := p.hits.Load()
				delta := total - prev[i]
				prev[i] = total
				if d.db == nil || delta == 0 {
					continue
				}
				logger.Infof("Saving %v hit(s) on pad %v to db", delta, p.name)
				err := d.db.WriteHits(context.Background(), postgres.WriteHitsParams{
					Pad:            p.name,
					Hits:           int64(delta),
					PeakMillivolts: p.levels.Peak(),
				})
				if err != nil {
					logger.Errorf("Failed to write to db [%v]", err)
				}
			}

			if testMode || d.cfg.Reporting.StatsURL == "" {
				return
			}

			stats := d.prepStats()
			vals, _ := query.Values(stats)
			logger.Infof("Stats: [%v]", vals)

			client := http.Client{Timeout: time.Second * 30}
			resp, err := client.Get(d.cfg.Reporting.StatsURL + "?" + vals.Encode())
			if err != nil {
				logger.Errorf("Failed to send stats [%v]", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != 200 {
				logger.Errorf("Stats endpoint returned [%v]", resp.Status)
			}
		}()
	}
}

func (d *drumstation) prepStats() *sessionStats {
	s := sessionStats{}
	s.Station = version
	// go magic date is Mon Jan 2 15:04:05 MST 2006
	s.DateString = time.Now().UTC().Format("2006-01-02+15:04:05")
	s.HitsA = d.pads[0].hits.Load()
	s.HitsB = d.pads[1].hits.Load()
	s.PeakA = d.pads[0].levels.Peak()
	s.PeakB = d.pads[1].levels.Peak()
	return &s
}
