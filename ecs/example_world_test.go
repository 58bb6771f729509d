package ecs_test

import (
	"fmt"

	"github.com/plus3/weft/ecs"
)

func ExampleWorld() {
	movement := &ecs.SystemFunc{
		Filter: ecs.Requires("pos", "vel"),
		UpdateFn: func(frame *ecs.Frame, e ecs.Entity) {
			pos, _ := frame.World.Component(e, "pos")
			vel, _ := frame.World.Component(e, "vel")
			frame.World.SetComponent(e, "pos", pos.(float64)+vel.(float64)*frame.DeltaTime)
		},
	}
	world := ecs.NewWorld(ecs.WithSystems(movement))

	mover := world.NewEntity()
	world.SetComponent(mover, "pos", 0.0)
	world.SetComponent(mover, "vel", 2.0)

	anchor := world.NewEntity()
	world.SetComponent(anchor, "pos", 5.0)

	for i := 0; i < 3; i++ {
		world.Update(0.5)
	}

	pos, _ := world.Component(mover, "pos")
	fmt.Println("mover:", pos)
	pos, _ = world.Component(anchor, "pos")
	fmt.Println("anchor:", pos)
	// Output:
	// mover: 3
	// anchor: 5
}

func ExampleWorld_UpdateSystem() {
	audit := &ecs.SystemFunc{
		Filter: ecs.Requires("score"),
		PreFn: func(frame *ecs.Frame) {
			fmt.Println("auditing, entities:", frame.World.EntityCount())
		},
	}
	world := ecs.NewWorld(ecs.WithSystems(audit))

	e := world.NewEntity()
	world.SetComponent(e, "score", 10)

	world.Update(1.0)
	world.SetSystemActive(audit, false)
	world.Update(1.0)

	// Inactive systems can still be driven by hand.
	world.UpdateSystem(audit, 1.0)
	// Output:
	// auditing, entities: 1
	// auditing, entities: 1
}
