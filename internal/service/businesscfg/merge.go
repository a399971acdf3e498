package businesscfg

// deepMerge рекурсивно сливает два словаря конфигурации
// Вложенные словари сливаются по ключам, списки и скаляры
// заменяются значением из override целиком
func deepMerge(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range override {
		if baseChild, ok := out[k].(map[string]interface{}); ok {
			if overrideChild, ok := v.(map[string]interface{}); ok {
				out[k] = deepMerge(baseChild, overrideChild)
				continue
			}
		}
		out[k] = v
	}

	return out
}
