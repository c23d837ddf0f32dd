package stats

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// ScheduleCleanup runs Cleanup(retainMonths) on the given cron spec
// (e.g. "@daily"). The caller stops the returned scheduler.
func ScheduleCleanup(s *Storage, spec string, retainMonths int) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.Cleanup(retainMonths) }); err != nil {
		return nil, fmt.Errorf("invalid stats cleanup schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
