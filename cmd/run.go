package cmd

import (
	"fmt"

	"github.com/sarchlab/devscore/devs"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var runDurationUnits int64

func init() {
	runCmd.Flags().Int64Var(&runDurationUnits, "duration", 1000,
		"number of base-precision time units to simulate")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bundled traffic-light demo model to completion.",
	RunE: func(cmd *cobra.Command, args []string) error {
		model := buildTrafficLightDemo()

		sim, err := devs.MakeSimulationBuilder().
			WithDuration(devs.NewDuration(runDurationUnits, devs.Base)).
			Build(model)
		if err != nil {
			return err
		}

		// Registered once per run so the summary still prints if
		// Simulate aborts partway through with an error: Execute's
		// atexit.Exit flushes this on every exit path.
		atexit.Register(func() {
			stats := sim.TransitionStats()
			fmt.Printf("time=%s internal=%d external=%d confluent=%d\n",
				sim.Time(), stats.Internal, stats.External, stats.Confluent)
		})

		return sim.Simulate()
	},
}

// trafficLightPhase names a phase of the light.
type trafficLightPhase int

const (
	phaseRed trafficLightPhase = iota
	phaseGreen
	phaseOrange
	phaseManual
)

var phaseDurations = map[trafficLightPhase]int64{
	phaseRed:    60,
	phaseGreen:  50,
	phaseOrange: 10,
}

var phaseNext = map[trafficLightPhase]trafficLightPhase{
	phaseRed:    phaseGreen,
	phaseGreen:  phaseOrange,
	phaseOrange: phaseRed,
}

// trafficLight implements devs.AtomicBehavior, cycling red -> green ->
// orange -> red on its own time_advance, until an external "to_manual"
// command arrives, after which it holds indefinitely. The cycling itself
// is delegated to a devs.PhaseSchedule.
type trafficLight struct {
	schedule *devs.PhaseSchedule[trafficLightPhase]
}

func newTrafficLight() *trafficLight {
	durations := make(map[trafficLightPhase]devs.Duration, len(phaseDurations))
	for phase, units := range phaseDurations {
		durations[phase] = devs.NewDuration(units, devs.Base)
	}

	return &trafficLight{schedule: devs.NewPhaseSchedule(phaseRed, durations, phaseNext)}
}

func (t *trafficLight) TimeAdvance() devs.Duration {
	return t.schedule.TimeAdvance()
}

func (t *trafficLight) InternalTransition() {
	t.schedule.Advance()
}

func (t *trafficLight) ExternalTransition(elapsed devs.Duration, bag devs.Bag) {
	for _, values := range bag {
		for _, v := range values {
			if v == "to_manual" {
				t.schedule.Hold(phaseManual)
			}
		}
	}
}

func (t *trafficLight) ConfluentTransition(elapsed devs.Duration, bag devs.Bag) {
	devs.DefaultConfluentTransition(t, elapsed, bag)
}

func (t *trafficLight) Output(bag devs.Bag) {}

// operator fires a single "to_manual" command at t=30, then never again.
type operator struct {
	fired       bool
	commandPort *devs.Port
}

func (o *operator) TimeAdvance() devs.Duration {
	if o.fired {
		return devs.Infinity
	}

	return devs.NewDuration(30, devs.Base)
}

func (o *operator) InternalTransition() { o.fired = true }

func (o *operator) ExternalTransition(elapsed devs.Duration, bag devs.Bag) {}

func (o *operator) ConfluentTransition(elapsed devs.Duration, bag devs.Bag) {
	devs.DefaultConfluentTransition(o, elapsed, bag)
}

func (o *operator) Output(bag devs.Bag) {
	bag.Append(o.commandPort, "to_manual")
}

func buildTrafficLightDemo() *devs.CoupledModel {
	root := devs.NewCoupledModel("intersection")

	light := devs.NewAtomicModel("light", newTrafficLight(), devs.Base)
	controlPort := light.AddInputPort("control")

	op := &operator{}
	opModel := devs.NewAtomicModel("operator", op, devs.Base)
	op.commandPort = opModel.AddOutputPort("command")

	root.AddChild(light)
	root.AddChild(opModel)
	root.Couple(op.commandPort, controlPort, devs.InternalCoupling)

	return root
}
