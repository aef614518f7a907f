package main

import (
	"flag"
	"log"

	impasse "github.com/SaladDais/Impasse"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/config"
	"github.com/SaladDais/Impasse/drivers/memscene"
	"github.com/SaladDais/Impasse/engine"
	"github.com/SaladDais/Impasse/utils"
	"github.com/SaladDais/Impasse/web"
)

func registerDemoFixture(eng *memscene.Engine) {
	eng.Register("demo", func(b *memscene.Builder) {
		b.Flags(0).
			Meta("Generator", "sceneview")

		b.Mesh("quad").
			Positions(
				[3]float32{-1, -1, 0}, [3]float32{1, -1, 0},
				[3]float32{1, 1, 0}, [3]float32{-1, 1, 0}).
			Normals(
				[3]float32{0, 0, 1}, [3]float32{0, 0, 1},
				[3]float32{0, 0, 1}, [3]float32{0, 0, 1}).
			UV(0, 2,
				[3]float32{0, 0, 0}, [3]float32{1, 0, 0},
				[3]float32{1, 1, 0}, [3]float32{0, 1, 0}).
			Triangle(0, 1, 2).
			Triangle(0, 2, 3).
			Material(0)

		b.Material().
			Name("checker").
			Floats(ai.MatKeyColorDiffuse, ai.SemanticNone, 0.8, 0.8, 0.8, 1)

		root := b.Root("demo_root")
		root.Child("quad_holder").Meshes(0)
	})
}

func main() {
	var addr, cfgPath, scenePath string
	var dumpScene bool
	flag.StringVar(&addr, "i", "", "Address of server, overrides config")
	flag.StringVar(&cfgPath, "config", "", "Path to yaml config")
	flag.StringVar(&scenePath, "scene", "demo", "Scene fixture to load on startup")
	flag.BoolVar(&dumpScene, "dump", false, "Dump the startup scene to stdout and exit")
	flag.Parse()

	if cfgPath != "" {
		if err := config.LoadFile(cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if addr == "" {
		addr = config.GetListenAddr()
	}

	eng := memscene.New()
	registerDemoFixture(eng)
	engine.SetDefault(eng)

	s, err := impasse.Load(scenePath)
	if err != nil {
		log.Fatal(err)
	}

	if dumpScene {
		bbMin, bbMax := impasse.BoundingBox(&s.Scene)
		utils.Dump(map[string]interface{}{
			"name":      s.Name(),
			"meshes":    s.Meshes().Len(),
			"materials": s.Materials().Len(),
			"bboxMin":   bbMin,
			"bboxMax":   bbMax,
		})
		return
	}

	web.RegisterScene(scenePath, s)

	if err := web.StartServer(addr); err != nil {
		log.Fatal(err)
	}
}
