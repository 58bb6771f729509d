package ecs_test

import (
	"fmt"

	"github.com/plus3/weft/ecs"
)

func ExampleAspect_Matches() {
	world := ecs.NewWorld()

	e := world.NewEntity()
	world.SetComponent(e, "pos", 1)
	world.SetComponent(e, "ghost", true)

	fmt.Println(ecs.Requires("pos").Matches(world, e))
	fmt.Println(ecs.Requires("pos").Without("ghost").Matches(world, e))
	fmt.Println(ecs.Requires("pos").WithAny("ghost", "solid").Matches(world, e))
	// Output:
	// true
	// false
	// true
}

func ExampleCompose() {
	moving := ecs.Requires("pos", "vel")
	alive := ecs.Requires("hp").Without("dead")

	both := ecs.Compose(moving, alive)
	fmt.Println(both.IsEmpty())

	// Conjunction with the empty aspect matches nothing.
	fmt.Println(ecs.Compose(moving, ecs.Aspect{}).IsEmpty())
	// Output:
	// false
	// true
}
