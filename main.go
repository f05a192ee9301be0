package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"time"

	"github.com/gr-butler/drumpads/audio"
	"github.com/gr-butler/drumpads/config"
	"github.com/gr-butler/drumpads/db/postgres"
	"github.com/gr-butler/drumpads/env"
	"github.com/gr-butler/drumpads/led"
	"github.com/gr-butler/drumpads/sensors"
	"github.com/gr-butler/drumpads/telemetry"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	logger "github.com/sirupsen/logrus"
)

const version = "GRB-DrumPads-1.0.1"

type drumstation struct {
	clock clockwork.Clock
	cfg   *config.Config
	args  env.Args

	pads   []*pad   // evaluation order: A then B
	passMv []uint32 // scratch for the current pass, indexed like pads

	telem  lineSender
	events *telemetry.Publisher
	player *audio.Player
	db     *postgres.DB

	indicator indicator
	hold      time.Duration
	beatLed   *led.LED

	samplerWake  chan struct{}
	feedbackWake chan struct{}
}

type webdata struct {
	TimeNow   string `json:"time"`
	PadALevel uint32 `json:"pad_a_mv"`
	PadBLevel uint32 `json:"pad_b_mv"`
	PadAPeak  uint32 `json:"pad_a_peak_mv"`
	PadBPeak  uint32 `json:"pad_b_peak_mv"`
	PadAHits  uint64 `json:"pad_a_hits"`
	PadBHits  uint64 `json:"pad_b_hits"`
}

var Prom_padHits = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pad_hits_total",
		Help: "Accepted strikes per pad",
	},
	[]string{"pad"},
)

var Prom_padLevel = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "pad_level_millivolts",
		Help: "Latest converted pad reading mV",
	},
	[]string{"pad"},
)

var Prom_soundsPlayed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sounds_played_total",
		Help: "Completed sample playbacks per sound",
	},
	[]string{"sound"},
)

var Prom_samplePasses = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "sample_passes_total",
		Help: "Completed sampling passes",
	},
)

var Prom_telemetryErrors = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "telemetry_errors_total",
		Help: "Failed serial telemetry writes",
	},
)

// called by prometheus
func init() {
	logger.Infof("%v: Initialize prometheus...", time.Now().Format(time.RFC822))
	prometheus.MustRegister(
		Prom_padHits,
		Prom_padLevel,
		Prom_soundsPlayed,
		Prom_samplePasses,
		Prom_telemetryErrors)
}

func main() {
	logger.Infof("Starting drum pad station [%v]", version)

	testMode := flag.Bool("test", false, "test mode, does not report externally")
	verbose := flag.Bool("verbose", false, "debug logging")
	soundOn := flag.Bool("sound", true, "enable sample playback")
	levels := flag.Bool("levels", false, "log pad levels")
	configPath := flag.String("config", "drumpads.yaml", "config file")
	flag.Parse()

	if *testMode {
		logger.Info("TEST MODE")
	}
	if *verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("Failed to load config!! [%v]", err)
		logger.Exit(1)
	}

	d := &drumstation{
		clock: clockwork.NewRealClock(),
		cfg:   cfg,
		args:  env.Args{Test: testMode, Verbose: verbose, SoundOn: soundOn, Levels: levels},
		hold:  env.FeedbackHold,
	}

	logger.Infof("%v: Initialize hardware...", time.Now().Format(time.RFC822))
	if _, err := host.Init(); err != nil {
		logger.Errorf("Failed to init periph host [%v]", err)
		logger.Exit(1)
	}

	busCloser, err := i2creg.Open(cfg.I2C.Bus)
	if err != nil {
		logger.Fatalf("failed to open I²C: %v", err)
	}
	defer busCloser.Close()
	var bus i2c.Bus = busCloser

	pads, err := sensors.NewPads(&bus, d.args)
	if err != nil {
		logger.Errorf("Failed to initialise pad ADC!! [%v]", err)
		logger.Exit(1)
	}
	d.pads = []*pad{
		newPad("A", audio.SoundSnare, pads.A),
		newPad("B", audio.SoundHiHat, pads.B),
	}
	d.passMv = make([]uint32, len(d.pads))

	audioOut, err := sensors.NewAudioOut(&bus)
	if err != nil {
		logger.Errorf("Failed to initialise audio DAC!! [%v]", err)
		logger.Exit(1)
	}
	d.player = audio.NewPlayer(audioOut, cfg.Playback.SampleRate)
	d.player.OnPlayed(func(s audio.Sound) {
		Prom_soundsPlayed.WithLabelValues(s.String()).Inc()
	})

	d.indicator = led.NewLED("Hit", env.HitLed)
	d.beatLed = led.NewLED("Heartbeat", env.HeartbeatLed)

	if cfg.Telemetry.Port != "" {
		telem, err := telemetry.Open(cfg.Telemetry.Port, cfg.Telemetry.BaudRate)
		if err != nil {
			// the station still drums without a plotter attached
			logger.Errorf("Serial telemetry disabled [%v]", err)
		} else {
			d.telem = telem
		}
	}

	if cfg.MQTT.Broker != "" && !(*testMode) {
		events, err := telemetry.NewPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			logger.Errorf("MQTT hit events disabled [%v]", err)
		} else {
			d.events = events
		}
	}

	if cfg.Reporting.DatabaseURL != "" && !(*testMode) {
		db, err := postgres.Open(cfg.Reporting.DatabaseURL)
		if err != nil {
			logger.Errorf("Hit history disabled [%v]", err)
		} else {
			d.db = db
		}
	}

	// tasks come up in dependency order, the sample timer last
	d.Start()

	go d.Reporting(*testMode)
	go d.heartbeat()

	// start web service
	http.HandleFunc("/", d.handler)
	http.HandleFunc("/live", d.liveHandler)
	http.Handle("/metrics", promhttp.Handler())
	logger.Info("Starting webservice...")
	logger.Fatal(http.ListenAndServe(":80", nil))
}

func (d *drumstation) heartbeat() {
	logger.Info("Heartbeat started")
	for {
		d.beatLed.Flash()
		time.Sleep(time.Second * 30)
	}
}

func (d *drumstation) handler(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Content-Type", "application/json")
	wd := webdata{
		TimeNow:   time.Now().Format(time.RFC822),
		PadALevel: d.pads[0].levels.GetLast(),
		PadBLevel: d.pads[1].levels.GetLast(),
		PadAPeak:  d.pads[0].levels.Peak(),
		PadBPeak:  d.pads[1].levels.Peak(),
		PadAHits:  d.pads[0].hits.Load(),
		PadBHits:  d.pads[1].hits.Load(),
	}

	js, err := json.Marshal(wd)
	if err != nil {
		logger.Errorf("JSON error [%v]", err)
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = rw.Write(js) // not much we can do if this fails
}
