package typedbus_test

import (
	"fmt"
	"runtime"

	"github.com/dep2p/go-typedbus"
)

type Temperature struct {
	typedbus.Buffered
	Celsius float64
}

type Display struct {
	Name string
}

func Example() {
	storage := typedbus.NewStorage(typedbus.WithDefaultExecutor(typedbus.Inline{}))
	on := typedbus.WithStorage(storage)

	typedbus.Post(Temperature{Celsius: 21.5}, on)

	// 缓冲事件：注册时立即收到最后值
	display := &Display{Name: "hall"}
	_ = typedbus.Bind(display, func(d *Display, t Temperature) {
		fmt.Printf("%s: %.1f°C\n", d.Name, t.Celsius)
	}, on)

	typedbus.Post(Temperature{Celsius: 22}, on)
	typedbus.Unregister[Temperature](display, on)
	typedbus.Post(Temperature{Celsius: 30}, on)

	last, _ := typedbus.LastValue[Temperature](on)
	fmt.Printf("last: %.1f°C\n", last.Celsius)
	runtime.KeepAlive(display)

	// Output:
	// hall: 21.5°C
	// hall: 22.0°C
	// last: 30.0°C
}
