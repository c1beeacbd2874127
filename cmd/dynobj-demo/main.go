package main

import (
	"flag"
	"fmt"
	"os"

	"dynobj/pkg/dynobj"
	"dynobj/pkg/render"
)

func main() {
	jsonFlag := flag.Bool("json", false, "Print the object as JSON after running the demo")
	flag.Parse()

	factory := dynobj.NewFactory()

	idName := factory.Intern("name")
	idSayHi := factory.Intern("sayHi")

	obj := factory.CreateObject()

	obj.Set(factory, idName, dynobj.NewValue("Cirno"))

	obj.Set(factory, idSayHi, dynobj.NewMethod(func(self *dynobj.Object, args dynobj.Args) (dynobj.Value, error) {
		name, err := dynobj.GetAs[string](self, idName)
		if err != nil {
			return dynobj.NewValue("hello from ???"), nil
		}
		return dynobj.NewValue("hello from " + name), nil
	}))

	result, err := dynobj.CallAs[string](obj, idSayHi, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(70)
	}
	fmt.Println(result)

	if *jsonFlag {
		out, err := render.ToJSON(factory, obj)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(70)
		}
		fmt.Println(out)
	}
}
