package driver

// Stage names a pipeline phase for progress reporting.
type Stage uint8

const (
	StageParse Stage = iota
	StageExtract
	StageValidate
)

// Status is the state of one file within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is a progress notification. File is empty for whole-run stage
// transitions.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// Observer receives events; it must be safe for concurrent calls.
type Observer func(Event)

func notify(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}
