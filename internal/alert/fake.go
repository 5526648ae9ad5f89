package alert

// FakeSender records notifications for test assertions.
type FakeSender struct {
	Subjects []string
	Bodies   []string

	// SendError, if set, is returned by Send.
	SendError error
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (f *FakeSender) Send(subject string, body string) error {
	if f.SendError != nil {
		return f.SendError
	}
	f.Subjects = append(f.Subjects, subject)
	f.Bodies = append(f.Bodies, body)
	return nil
}
