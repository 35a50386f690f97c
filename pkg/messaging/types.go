package messaging

type ChangeTopic string

const (
	SessionStarted   ChangeTopic = "session_started"
	SelectionChanged ChangeTopic = "selection_changed"
	SortingChanged   ChangeTopic = "sorting_changed"
	RowDoubleClicked ChangeTopic = "row_double_clicked"
)

// AllTopics lists every topic the table publishes.
var AllTopics = []ChangeTopic{SessionStarted, SelectionChanged, SortingChanged, RowDoubleClicked}

// DefaultPrefix namespaces exchanges and queues.
const DefaultPrefix = "table"
