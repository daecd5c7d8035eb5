package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestEvents(t *testing.T) {
	t.Log("Given the need to fan out events to subscribers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen two subscribers are registered.", testID)
		{
			evts := events.New()

			ch1 := evts.Subscribe("one")
			ch2 := evts.Subscribe("two")

			if evts.Subscribe("one") != ch1 {
				t.Fatalf("\t%s\tTest %d:\tShould get back the same channel for the same id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get back the same channel for the same id.", success, testID)

			evts.Send("state: Mine: block[2]")

			for _, ch := range []<-chan string{ch1, ch2} {
				if msg := <-ch; msg != "state: Mine: block[2]" {
					t.Fatalf("\t%s\tTest %d:\tShould receive the message: %q", failed, testID, msg)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould receive the message on every channel.", success, testID)

			if err := evts.Unsubscribe("one"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unsubscribe: %v", failed, testID, err)
			}
			if _, open := <-ch1; open {
				t.Fatalf("\t%s\tTest %d:\tShould close an unsubscribed channel.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close an unsubscribed channel.", success, testID)

			if err := evts.Unsubscribe("one"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould not unsubscribe an unknown id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not unsubscribe an unknown id.", success, testID)

			for i := 0; i < 500; i++ {
				evts.Send("flood")
			}
			t.Logf("\t%s\tTest %d:\tShould not block on a slow subscriber.", success, testID)

			evts.Shutdown()
			if evts.Count() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould remove every subscriber on shutdown.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould remove every subscriber on shutdown.", success, testID)
		}
	}
}
