package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Checker runs the external advisory check. An invocation takes as long as
// it takes; the coordinator never starts a second one while the first is
// outstanding. Implementations return the affected packages in their own
// output order, or an error describing why the check could not complete.
type Checker interface {
	Check(ctx context.Context) ([]Update, error)
}

// Coordinator is the single background worker of the pipeline. It consumes
// triggers, collapses bursts into one check, invokes the checker within its
// own goroutine and publishes exactly one Status per completed check.
//
// State machine: Idle (blocked on the trigger queue) and Running (a checker
// invocation in progress). Triggers arriving while Running stay queued and
// cause exactly one follow-up check, not one per trigger.
type Coordinator struct {
	checker  Checker
	triggers *Queue[Trigger]
	results  *Queue[Status]
	logger   *logrus.Entry
}

// NewCoordinator wires the coordinator to its trigger source and result sink.
func NewCoordinator(checker Checker, triggers *Queue[Trigger], results *Queue[Status], logger *logrus.Entry) *Coordinator {
	return &Coordinator{
		checker:  checker,
		triggers: triggers,
		results:  results,
		logger:   logger,
	}
}

// Run consumes triggers until the context is canceled or the trigger queue
// is closed. Checker failures are converted into error statuses and never
// terminate the loop; the coordinator is expected to live as long as the
// process does.
func (c *Coordinator) Run(ctx context.Context) {
	c.logger.Info("Coordinator started")
	defer c.logger.Info("Coordinator stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case trigger, ok := <-c.triggers.Out():
			if !ok {
				return
			}
			// Collapse the burst: anything already queued would request
			// the same work this check is about to do.
			collapsed := c.triggers.Drain()
			c.logger.WithFields(logrus.Fields{
				"trigger":   trigger.String(),
				"collapsed": collapsed,
			}).Debug("Starting check")

			status := c.check(ctx)
			c.results.Send(status)
		}
	}
}

// check runs one checker invocation and classifies its outcome. This is the
// only place the pipeline blocks on external work.
func (c *Coordinator) check(ctx context.Context) Status {
	updates, err := c.checker.Check(ctx)
	status := Classify(updates, err)

	if err != nil {
		c.logger.WithError(err).Warn("Check failed")
	} else {
		c.logger.WithField("updates", len(updates)).Info("Check completed")
	}
	return status
}
