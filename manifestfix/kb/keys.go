package kb

// KnownKeys is the set of canonical Kubernetes manifest key names the fuzzy
// matcher in pass one corrects misspelled fields against. It deliberately
// covers the keys that show up across the workload, networking, storage and
// RBAC kinds a hand-written manifest is likely to contain; it is not a
// full OpenAPI key inventory.
var KnownKeys = map[string]bool{
	"apiVersion": true, "kind": true, "metadata": true, "spec": true,
	"status": true, "data": true, "binaryData": true, "stringData": true,
	"name": true, "namespace": true, "labels": true, "annotations": true,
	"generation": true, "generateName": true, "finalizers": true,
	"ownerReferences": true, "resourceVersion": true, "uid": true,
	"creationTimestamp": true, "deletionTimestamp": true,

	"replicas": true, "selector": true, "template": true, "strategy": true,
	"minReadySeconds": true, "revisionHistoryLimit": true, "paused": true,
	"progressDeadlineSeconds": true, "matchLabels": true, "matchExpressions": true,

	"containers": true, "initContainers": true, "ephemeralContainers": true,
	"volumes": true, "restartPolicy": true, "terminationGracePeriodSeconds": true,
	"activeDeadlineSeconds": true, "dnsPolicy": true, "nodeSelector": true,
	"serviceAccountName": true, "serviceAccount": true, "automountServiceAccountToken": true,
	"hostNetwork": true, "hostPID": true, "hostIPC": true, "shareProcessNamespace": true,
	"securityContext": true, "imagePullSecrets": true, "hostname": true,
	"subdomain": true, "affinity": true, "schedulerName": true, "tolerations": true,
	"hostAliases": true, "priorityClassName": true, "priority": true,
	"readinessGates": true, "runtimeClassName": true, "enableServiceLinks": true,
	"overhead": true, "topologySpreadConstraints": true, "setHostnameAsFQDN": true,

	"image": true, "command": true, "args": true, "workingDir": true,
	"ports": true, "envFrom": true, "env": true, "resources": true,
	"volumeMounts": true, "volumeDevices": true, "livenessProbe": true,
	"readinessProbe": true, "startupProbe": true, "lifecycle": true,
	"terminationMessagePath": true, "terminationMessagePolicy": true,
	"imagePullPolicy": true, "stdin": true, "stdinOnce": true, "tty": true,

	"containerPort": true, "hostPort": true, "protocol": true, "hostIP": true,
	"value": true, "valueFrom": true, "fieldRef": true, "resourceFieldRef": true,
	"configMapKeyRef": true, "secretKeyRef": true, "configMapRef": true,
	"secretRef": true, "prefix": true, "optional": true,

	"limits": true, "requests": true, "claims": true,

	"mountPath": true, "subPath": true, "subPathExpr": true, "readOnly": true,
	"mountPropagation": true,

	"httpGet": true, "tcpSocket": true, "exec": true, "grpc": true,
	"path": true, "port": true, "host": true, "scheme": true, "httpHeaders": true,
	"initialDelaySeconds": true, "periodSeconds": true, "timeoutSeconds": true,
	"successThreshold": true, "failureThreshold": true, "service": true,

	"postStart": true, "preStop": true,

	"type": true, "clusterIP": true, "clusterIPs": true, "externalIPs": true,
	"externalName": true, "externalTrafficPolicy": true, "loadBalancerIP": true,
	"loadBalancerSourceRanges": true, "publishNotReadyAddresses": true,
	"sessionAffinity": true, "sessionAffinityConfig": true, "ipFamilies": true,
	"ipFamilyPolicy": true, "targetPort": true, "nodePort": true,

	"rules": true, "tls": true, "ingressClassName": true, "defaultBackend": true,
	"backend": true, "http": true, "paths": true, "pathType": true,
	"secretName": true, "hosts": true, "serviceName": true, "servicePort": true,

	"accessModes": true, "capacity": true, "storageClassName": true,
	"volumeMode": true, "persistentVolumeReclaimPolicy": true, "volumeName": true,
	"dataSource": true, "dataSourceRef": true,

	"completions": true, "parallelism": true, "backoffLimit": true,
	"activeDeadlineSecondsJob": true, "ttlSecondsAfterFinished": true,
	"schedule": true, "concurrencyPolicy": true, "startingDeadlineSeconds": true,
	"suspend": true, "successfulJobsHistoryLimit": true, "failedJobsHistoryLimit": true,
	"jobTemplate": true,

	"podManagementPolicy": true, "serviceName2": true, "updateStrategy": true,
	"volumeClaimTemplates": true, "minReadySecondsSts": true,

	"rollingUpdate": true, "maxSurge": true, "maxUnavailable": true,
	"partition": true,

	"role": true, "roleRef": true, "subjects": true, "apiGroup": true,
	"apiGroups": true, "resourceNames": true, "verbs": true, "nonResourceURLs": true,

	"weight": true, "preference": true, "podAffinityTerm": true,
	"topologyKey": true, "namespaceSelector": true, "namespaces": true,
	"requiredDuringSchedulingIgnoredDuringExecution": true,
	"preferredDuringSchedulingIgnoredDuringExecution": true,

	"key": true, "operator": true, "values": true, "effect": true,
	"tolerationSeconds": true,

	"runAsUser": true, "runAsGroup": true, "runAsNonRoot": true,
	"fsGroup": true, "fsGroupChangePolicy": true, "supplementalGroups": true,
	"seLinuxOptions": true, "seccompProfile": true, "sysctls": true,
	"windowsOptions": true, "allowPrivilegeEscalation": true, "capabilities": true,
	"privileged": true, "procMount": true, "readOnlyRootFilesystem": true,
	"add": true, "drop": true,

	"configMap": true, "secret": true, "emptyDir": true, "hostPath": true,
	"persistentVolumeClaim": true, "projected": true, "downwardAPI": true,
	"items": true, "defaultMode": true, "medium": true, "sizeLimit": true,
	"claimName": true, "sources": true,
}

// ParentKeywords are keys whose block is expected to contain child mappings
// or list items. Bare-key inference and aggressive colon repair weight these
// higher than arbitrary single words because a manifest almost never uses
// them as scalar values.
var ParentKeywords = map[string]bool{
	"metadata": true, "spec": true, "status": true, "template": true,
	"selector": true, "labels": true, "annotations": true, "containers": true,
	"volumes": true, "ports": true, "env": true, "resources": true,
	"limits": true, "requests": true, "livenessProbe": true, "readinessProbe": true,
	"startupProbe": true, "httpGet": true, "tcpSocket": true, "exec": true, "grpc": true,
	"rules": true, "subjects": true, "roleRef": true, "matchLabels": true,
	"matchExpressions": true, "tolerations": true, "affinity": true,
	"volumeMounts": true, "securityContext": true, "strategy": true,
	"rollingUpdate": true, "backend": true, "http": true, "paths": true,
	"data": true, "binaryData": true, "updateStrategy": true,
	"volumeClaimTemplates": true, "jobTemplate": true,
}

// TopLevelFields are the fields a document root is permitted to carry.
// Anything else found at indent zero is either a misspelling Pass 1 can
// fuzzy-correct, or a stray field Pass 2 hoists into metadata.
var TopLevelFields = map[string]bool{
	"apiVersion": true, "kind": true, "metadata": true, "spec": true,
	"status": true, "data": true, "binaryData": true, "stringData": true,
	"rules": true, "subjects": true, "roleRef": true, "webhooks": true,
	"secrets": true, "imagePullSecrets": true, "automountServiceAccountToken": true,
}

// NumericFields are keys whose scalar value must be an integer. Pass 3
// coerces quoted-integer and word-number literals on these keys.
var NumericFields = map[string]bool{
	"replicas": true, "port": true, "containerPort": true, "hostPort": true,
	"targetPort": true, "nodePort": true, "initialDelaySeconds": true,
	"periodSeconds": true, "timeoutSeconds": true, "successThreshold": true,
	"failureThreshold": true, "terminationGracePeriodSeconds": true,
	"activeDeadlineSeconds": true, "minReadySeconds": true,
	"revisionHistoryLimit": true, "progressDeadlineSeconds": true,
	"backoffLimit": true, "completions": true, "parallelism": true,
	"ttlSecondsAfterFinished": true, "startingDeadlineSeconds": true,
	"successfulJobsHistoryLimit": true, "failedJobsHistoryLimit": true,
	"priority": true, "generation": true, "sizeLimit": true,
	"mountPropagation": true, "defaultMode": true, "runAsUser": true,
	"runAsGroup": true, "fsGroup": true, "tolerationSeconds": true,
	"weight": true, "partition": true,
}

// BooleanFields are keys whose scalar value must be a boolean. Pass 3 maps
// BooleanStrings onto these, in addition to the YAML-native true/false.
var BooleanFields = map[string]bool{
	"hostNetwork": true, "hostPID": true, "hostIPC": true,
	"shareProcessNamespace": true, "automountServiceAccountToken": true,
	"readOnly": true, "optional": true, "privileged": true,
	"runAsNonRoot": true, "allowPrivilegeEscalation": true,
	"readOnlyRootFilesystem": true, "paused": true, "suspend": true,
	"stdin": true, "stdinOnce": true, "tty": true, "enableServiceLinks": true,
	"publishNotReadyAddresses": true, "setHostnameAsFQDN": true,
}

// TypoCorrections maps normalized (letters-only, lowercased) common
// misspellings straight to their canonical key, bypassing the Levenshtein
// matcher for the cases worth hard-coding because they are either too far
// from the canonical spelling to reach by edit distance, or too common to
// risk misrouting to the wrong neighbor.
var TypoCorrections = map[string]string{
	"met":         "metadata",
	"meta":        "metadata",
	"metdata":     "metadata",
	"medatada":    "metadata",
	"namepsace":   "namespace",
	"nasmespace":  "namespace",
	"lable":       "labels",
	"lables":      "labels",
	"anotations":  "annotations",
	"annotation":  "annotations",
	"contianers":  "containers",
	"continers":   "containers",
	"contaienrs":  "containers",
	"replics":     "replicas",
	"replicase":   "replicas",
	"selecter":    "selector",
	"tempalte":    "template",
	"templete":    "template",
	"evn":         "env",
	"evnfrom":     "envFrom",
	"iamge":       "image",
	"imge":        "image",
	"comand":      "command",
	"commnad":     "command",
	"prots":       "ports",
	"prt":         "port",
	"recources":   "resources",
	"resourcs":    "resources",
	"livenesprobe":  "livenessProbe",
	"readinesprobe": "readinessProbe",
	"volumess":   "volumes",
	"voulmes":    "volumes",
	"volumemounts": "volumeMounts",
	"mountpath":  "mountPath",
	"sevice":     "service",
	"srevice":    "service",
	"srvices":    "service",
	"strategey":  "strategy",
	"restartpolicy": "restartPolicy",
	"imagepullpolicy": "imagePullPolicy",
	"servicaccount":  "serviceAccount",
	"serviceaccountname": "serviceAccountName",
}

// FieldTypoMap is consulted before the general typo table for corrections
// that are only valid within a specific parent context (e.g. "nmae" under
// metadata means "name", but the same string elsewhere might not). Keys are
// "parentKey/normalizedChild".
var FieldTypoMap = map[string]string{
	"metadata/nmae":   "name",
	"metadata/anme":   "name",
	"spec/replics":    "replicas",
	"spec/tye":        "type",
	"container/iamge": "image",
}
