package manifestfix

import (
	"strings"

	"github.com/goccy/go-yaml"
	"go.kubefix.dev/manifestfix/kb"
)

// PassASTReconstruction is the contractual name of Pass 2.
const PassASTReconstruction = "AST Reconstruction"

const (
	confObjectRepair     = 0.9
	confRequiredField    = 0.85
	confRootMetadataMove = 0.95
	placeholderName      = "changeme-name"
	placeholderImage     = "changeme-image"
)

// pass2ASTReconstruction parses every document, applies object-level
// repairs, and re-serializes in canonical key order. If any document fails
// to parse, the whole pass is a no-op: the text is handed to Pass 3
// unchanged, per the design note that Pass 2 only operates on an
// already-parseable baseline.
func pass2ASTReconstruction(text string, log *changeLog, opts Options) string {
	segments := splitDocuments(text)

	docs := make([]map[string]interface{}, len(segments))
	empty := make([]bool, len(segments))
	allEmpty := true

	for i, seg := range segments {
		var v interface{}
		if strings.TrimSpace(seg) == "" {
			empty[i] = true

			continue
		}

		if err := yaml.Unmarshal([]byte(seg), &v); err != nil {
			return text
		}

		m, ok := v.(map[string]interface{})
		if !ok {
			if v == nil {
				empty[i] = true

				continue
			}

			return text
		}

		docs[i] = m
		allEmpty = false
	}

	// Every document in the stream was blank or null: there is nothing to
	// reconstruct, and re-serializing would only rewrite document
	// separators the input already had exactly right.
	if allEmpty {
		return text
	}

	rendered := make([]string, len(docs))

	for i, doc := range docs {
		if empty[i] {
			continue
		}

		repairDocument(doc, log, opts)
		rendered[i] = encodeDocument(doc)
	}

	return strings.Join(rendered, "\n---\n")
}

// splitDocuments splits text on bare "---" separator lines that are not
// inside a block scalar, mirroring the same boundary rule Pass 1 and Pass 3
// use for their context stacks.
func splitDocuments(text string) []string {
	lines := strings.Split(text, "\n")
	mask := buildBlockScalarMask(lines)

	var segments []string

	start := 0

	for i, line := range lines {
		if mask.at(i) {
			continue
		}

		if separatorLineRe.MatchString(strings.TrimRight(line, " ")) && strings.HasPrefix(strings.TrimSpace(line), "---") {
			segments = append(segments, strings.Join(lines[start:i], "\n"))
			start = i + 1
		}
	}

	segments = append(segments, strings.Join(lines[start:], "\n"))

	return segments
}

func repairDocument(doc map[string]interface{}, log *changeLog, opts Options) {
	inferKind(doc, log)
	upgradeDeprecatedAPIs(doc, log)
	inferAPIVersion(doc, log)
	relocateWorkloadContainers(doc, log, opts)
	injectRequiredFields(doc, log)
	normalizeEnumCase(doc, log)
	cleanupRootMetadata(doc, log)
}

func docKind(doc map[string]interface{}) string {
	k, _ := doc["kind"].(string)

	return k
}

// inferKind fills in a missing "kind" by inspecting the document's shape:
// spec.template implies Deployment, spec.containers implies Pod, top-level
// data/binaryData implies ConfigMap, Pod otherwise.
func inferKind(doc map[string]interface{}, log *changeLog) {
	if _, ok := doc["kind"]; ok {
		return
	}

	kind := "Pod"
	spec, _ := doc["spec"].(map[string]interface{})

	switch {
	case spec != nil && spec["template"] != nil:
		kind = "Deployment"
	case spec != nil && spec["containers"] != nil:
		kind = "Pod"
	case doc["data"] != nil || doc["binaryData"] != nil:
		kind = "ConfigMap"
	}

	doc["kind"] = kind
	log.addf(1, missingMarker("kind"), kind, "inferred missing kind from document shape", CategoryStructure, SeverityError, confObjectRepair)
}

// upgradeDeprecatedAPIs rewrites a deprecated (Kind, apiVersion) pair to its
// replacement and performs the accompanying structural migration.
func upgradeDeprecatedAPIs(doc map[string]interface{}, log *changeLog) {
	kind := docKind(doc)
	apiVersion, _ := doc["apiVersion"].(string)

	replacement, deprecated := kb.DeprecatedAPIVersions[[2]string{kind, apiVersion}]
	if !deprecated {
		return
	}

	doc["apiVersion"] = replacement
	log.addf(1, apiVersion, replacement, "upgraded deprecated apiVersion for "+kind, CategoryStructure, SeverityError, confObjectRepair)

	if kind == "Ingress" {
		upgradeIngressPaths(doc, log)
	}
}

func upgradeIngressPaths(doc map[string]interface{}, log *changeLog) {
	spec, _ := doc["spec"].(map[string]interface{})
	if spec == nil {
		return
	}

	rules, _ := spec["rules"].([]interface{})

	for _, r := range rules {
		rule, _ := r.(map[string]interface{})
		if rule == nil {
			continue
		}

		http, _ := rule["http"].(map[string]interface{})
		if http == nil {
			continue
		}

		paths, _ := http["paths"].([]interface{})

		for _, p := range paths {
			path, _ := p.(map[string]interface{})
			if path == nil {
				continue
			}

			if _, ok := path["pathType"]; !ok {
				path["pathType"] = "Prefix"
				log.addf(1, missingMarker("pathType"), "Prefix", "set default pathType for upgraded Ingress path", CategoryStructure, SeverityWarning, confRequiredField)
			}

			backend, _ := path["backend"].(map[string]interface{})
			if backend == nil {
				continue
			}

			serviceName, hasName := backend["serviceName"].(string)
			if !hasName {
				continue
			}

			servicePort := 80
			if sp, ok := backend["servicePort"]; ok {
				servicePort = toInt(sp, 80)
			}

			delete(backend, "serviceName")
			delete(backend, "servicePort")
			backend["service"] = map[string]interface{}{
				"name": serviceName,
				"port": map[string]interface{}{"number": servicePort},
			}

			log.addf(1, "serviceName/servicePort", "service.name/service.port.number", "rewrote Ingress backend to the v1 shape", CategoryStructure, SeverityError, confObjectRepair)
		}
	}
}

// inferAPIVersion fills in a missing apiVersion based on the document's
// (possibly just-inferred) Kind.
func inferAPIVersion(doc map[string]interface{}, log *changeLog) {
	if _, ok := doc["apiVersion"]; ok {
		return
	}

	kind := docKind(doc)

	apiVersion, ok := kb.DefaultAPIVersions[kind]
	if !ok {
		apiVersion = "v1"
	}

	doc["apiVersion"] = apiVersion
	log.addf(1, missingMarker("apiVersion"), apiVersion, "inferred missing apiVersion from kind "+kind, CategoryStructure, SeverityError, confObjectRepair)
}

// relocateWorkloadContainers moves a misplaced container list for a
// workload-controller kind to spec.template.spec.containers, synthesizing a
// generated-app selector/label pair if one is missing.
func relocateWorkloadContainers(doc map[string]interface{}, log *changeLog, opts Options) {
	kind := docKind(doc)
	if !kb.WorkloadControllerKinds[kind] {
		return
	}

	spec, _ := doc["spec"].(map[string]interface{})

	var containers interface{}

	switch {
	case doc["containers"] != nil:
		containers = doc["containers"]
		delete(doc, "containers")
	case spec != nil && spec["containers"] != nil && (spec["template"] == nil):
		containers = spec["containers"]
		delete(spec, "containers")
	default:
		containers = nil
	}

	if containers == nil {
		return
	}

	if spec == nil {
		spec = map[string]interface{}{}
		doc["spec"] = spec
	}

	template, _ := spec["template"].(map[string]interface{})
	if template == nil {
		template = map[string]interface{}{}
		spec["template"] = template
	}

	templateSpec, _ := template["spec"].(map[string]interface{})
	if templateSpec == nil {
		templateSpec = map[string]interface{}{}
		template["spec"] = templateSpec
	}

	templateSpec["containers"] = containers
	log.addf(1, "containers", "spec.template.spec.containers", "relocated misplaced container list", CategoryStructure, SeverityError, confObjectRepair)

	if _, ok := spec["selector"]; !ok {
		spec["selector"] = map[string]interface{}{
			"matchLabels": map[string]interface{}{"app": "generated-app"},
		}
		log.addf(1, missingMarker("spec.selector"), "generated-app", "synthesized selector for relocated workload", CategoryStructure, SeverityWarning, confRequiredField)
	}

	templateMeta, _ := template["metadata"].(map[string]interface{})
	if templateMeta == nil {
		templateMeta = map[string]interface{}{}
		template["metadata"] = templateMeta
	}

	if _, ok := templateMeta["labels"]; !ok {
		templateMeta["labels"] = map[string]interface{}{"app": "generated-app"}
		log.addf(1, missingMarker("spec.template.metadata.labels"), "generated-app", "synthesized pod template labels", CategoryStructure, SeverityWarning, confRequiredField)
	}
}

// injectRequiredFields ensures metadata, metadata.name, metadata.namespace
// (where applicable), spec, and a container list all exist, populating
// documented placeholders when they are missing entirely.
func injectRequiredFields(doc map[string]interface{}, log *changeLog) {
	kind := docKind(doc)

	metadata, _ := doc["metadata"].(map[string]interface{})
	if metadata == nil {
		metadata = map[string]interface{}{}
		doc["metadata"] = metadata
		log.addf(1, missingMarker("metadata"), "{}", "ensured metadata exists", CategoryStructure, SeverityError, confRequiredField)
	}

	if _, ok := metadata["name"]; !ok {
		metadata["name"] = placeholderName
		log.addf(1, missingMarker("metadata.name"), placeholderName, "ensured metadata.name exists", CategoryStructure, SeverityError, confRequiredField)
	}

	if !kb.NamespaceExemptKinds[kind] {
		if _, ok := metadata["namespace"]; !ok {
			metadata["namespace"] = "default"
			log.addf(1, missingMarker("metadata.namespace"), "default", "ensured metadata.namespace exists", CategoryStructure, SeverityWarning, confRequiredField)
		}
	}

	needsSpec := kb.WorkloadControllerKinds[kind] || kind == "Pod" || kind == "Service"
	if !needsSpec {
		return
	}

	spec, _ := doc["spec"].(map[string]interface{})
	if spec == nil {
		spec = map[string]interface{}{}
		doc["spec"] = spec
		log.addf(1, missingMarker("spec"), "{}", "ensured spec exists", CategoryStructure, SeverityError, confRequiredField)
	}

	if kind == "Service" {
		return
	}

	ensureContainers(doc, kind, spec, log)
}

func ensureContainers(doc map[string]interface{}, kind string, spec map[string]interface{}, log *changeLog) {
	placeholder := []interface{}{
		map[string]interface{}{"name": "app", "image": placeholderImage},
	}

	if kind == "Pod" {
		containers, _ := spec["containers"].([]interface{})
		if len(containers) == 0 {
			spec["containers"] = placeholder
			log.addf(1, missingMarker("spec.containers"), "app/"+placeholderImage, "ensured spec.containers is non-empty", CategoryStructure, SeverityError, confRequiredField)
		}

		return
	}

	template, _ := spec["template"].(map[string]interface{})
	if template == nil {
		template = map[string]interface{}{}
		spec["template"] = template
	}

	templateSpec, _ := template["spec"].(map[string]interface{})
	if templateSpec == nil {
		templateSpec = map[string]interface{}{}
		template["spec"] = templateSpec
	}

	containers, _ := templateSpec["containers"].([]interface{})
	if len(containers) == 0 {
		templateSpec["containers"] = placeholder
		log.addf(1, missingMarker("spec.template.spec.containers"), "app/"+placeholderImage, "ensured spec.template.spec.containers is non-empty", CategoryStructure, SeverityError, confRequiredField)
	}
}

// normalizeEnumCase case-corrects restartPolicy, imagePullPolicy,
// Service.spec.type, and port protocol values against their canonical enum
// members.
func normalizeEnumCase(doc map[string]interface{}, log *changeLog) {
	kind := docKind(doc)
	spec, _ := doc["spec"].(map[string]interface{})

	if spec == nil {
		return
	}

	normalizeEnumField(spec, "restartPolicy", kb.RestartPolicyValues, log)

	if kind == "Service" {
		normalizeEnumField(spec, "type", kb.ServiceTypeValues, log)
	}

	normalizePodSpecEnums(podSpecOf(kind, spec), log)
}

func podSpecOf(kind string, spec map[string]interface{}) map[string]interface{} {
	if kind == "Pod" {
		return spec
	}

	template, _ := spec["template"].(map[string]interface{})
	if template == nil {
		return nil
	}

	templateSpec, _ := template["spec"].(map[string]interface{})

	return templateSpec
}

func normalizePodSpecEnums(podSpec map[string]interface{}, log *changeLog) {
	if podSpec == nil {
		return
	}

	containers, _ := podSpec["containers"].([]interface{})
	for _, c := range containers {
		container, _ := c.(map[string]interface{})
		if container == nil {
			continue
		}

		normalizeEnumField(container, "imagePullPolicy", kb.ImagePullPolicyValues, log)

		ports, _ := container["ports"].([]interface{})
		for _, pp := range ports {
			port, _ := pp.(map[string]interface{})
			if port == nil {
				continue
			}

			normalizeEnumField(port, "protocol", kb.ProtocolValues, log)
		}
	}
}

func normalizeEnumField(m map[string]interface{}, key string, values []string, log *changeLog) {
	raw, ok := m[key].(string)
	if !ok || raw == "" {
		return
	}

	for _, v := range values {
		if strings.EqualFold(raw, v) && raw != v {
			m[key] = v
			log.addf(1, raw, v, "normalized enum case for "+key, CategorySemantic, SeverityWarning, confObjectRepair)

			return
		}
	}
}

// cleanupRootMetadata promotes stray root-level name/labels/annotations/
// namespace fields into metadata, always deleting the root occurrence.
func cleanupRootMetadata(doc map[string]interface{}, log *changeLog) {
	metadata, _ := doc["metadata"].(map[string]interface{})
	if metadata == nil {
		return
	}

	for _, field := range []string{"name", "labels", "annotations", "namespace"} {
		rootValue, hasRoot := doc[field]
		if !hasRoot {
			continue
		}

		_, hasMetadata := metadata[field]

		promote := !hasMetadata
		if field == "name" && !promote {
			if metadata["name"] == placeholderName && rootValue != placeholderName {
				promote = true
			}
		}

		if promote {
			metadata[field] = rootValue
			log.addf(1, "root."+field, "metadata."+field, "promoted stray root-level field into metadata", CategoryStructure, SeverityError, confRootMetadataMove)
		} else {
			log.addf(1, "root."+field, removedMarker, "removed stray root-level field already set in metadata", CategoryStructure, SeverityWarning, confRootMetadataMove)
		}

		delete(doc, field)
	}
}

func toInt(v interface{}, def int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case uint64:
		return int(val)
	case string:
		if n, ok := parseIntLoose(val); ok {
			return n
		}
	}

	return def
}

func parseIntLoose(s string) (int, bool) {
	n := 0
	neg := false
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, false
	}

	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	if neg {
		n = -n
	}

	return n, true
}
