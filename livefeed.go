package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

// livePeriod is how often each live feed client gets a level frame.
const livePeriod = 100 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 512,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type liveFrame struct {
	TimeNow   string `json:"time"`
	PadALevel uint32 `json:"pad_a_mv"`
	PadBLevel uint32 `json:"pad_b_mv"`
	PadAHits  uint64 `json:"pad_a_hits"`
	PadBHits  uint64 `json:"pad_b_hits"`
}

// liveHandler streams pad levels over a websocket for the level visualiser.
// A client that can't keep up is dropped on the first failed write.
func (d *drumstation) liveHandler(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		logger.Errorf("Live feed upgrade failed [%v]", err)
		return
	}
	logger.Infof("Live feed client connected [%v]", conn.RemoteAddr())

	go func() {
		defer conn.Close()
		tick := time.NewTicker(livePeriod)
		defer tick.Stop()
		for range tick.C {
			if err := conn.WriteJSON(d.currentFrame()); err != nil {
				logger.Infof("Live feed client dropped [%v]", err)
				return
			}
		}
	}()
}

func (d *drumstation) currentFrame() liveFrame {
	return liveFrame{
		TimeNow:   time.Now().Format(time.RFC822),
		PadALevel: d.pads[0].levels.GetLast(),
		PadBLevel: d.pads[1].levels.GetLast(),
		PadAHits:  d.pads[0].hits.Load(),
		PadBHits:  d.pads[1].hits.Load(),
	}
}
