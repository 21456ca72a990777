/*
Copyright © 2025 The anuvad authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/spf13/viper"

	"github.com/minilingo/anuvad/internal/engine"
	"github.com/minilingo/anuvad/internal/translator"
)

// newEngine constructs the Hugging Face engine from configuration. Every
// field has a sensible default, so an empty config works out of the box;
// set ANUVAD_ENGINE_TOKEN to authenticate against the Inference API.
func newEngine() *engine.HF {
	return engine.NewHF(engine.HFConfig{
		BaseURL: viper.GetString("engine.base_url"),
		HubURL:  viper.GetString("engine.hub_url"),
		Token:   viper.GetString("engine.token"),
		Timeout: viper.GetDuration("engine.timeout"),
	})
}

// newTranslator wires the engine, the model cache, and the generation
// settings into a ready-to-use translator.
func newTranslator() (*translator.Translator, error) {
	return translator.New(newEngine(), translator.Config{
		MaxNewTokens:  viper.GetInt("generation.max_new_tokens"),
		CacheCapacity: viper.GetInt("cache.capacity"),
	})
}
