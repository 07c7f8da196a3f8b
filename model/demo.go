package model

// Demo 返回内置的演示数据集，与 examples/demo.roadmap 内容一致。
func Demo() Dataset {
	return Dataset{
		Title:      "项目产品协同演进全景看板",
		StartYear:  2026,
		StartMonth: 1,
		Months:     DefaultMonths,
		Projects: []Project{
			{
				ID: "proj-1", Name: "核心架构 4.0 重构", Start: 0, End: 330, Color: "#6366f1",
				SubProjects: []SubProject{
					{ID: "sub-1-1", Name: "底层服务拆分", Start: 0, End: 150},
					{ID: "sub-1-2", Name: "平台网关升级", Start: 120, End: 300},
				},
			},
			{
				ID: "proj-2", Name: "AI 自动化执行引擎", Start: 90, End: 420, Color: "#818cf8",
				SubProjects: []SubProject{
					{ID: "sub-2-1", Name: "推理编排核心", Start: 90, End: 270},
				},
			},
			{ID: "proj-3", Name: "全球合规化管理中心", Start: 210, End: 510, Color: "#4f46e5"},
		},
		Products: []Product{
			{
				ID: "prod-1", Name: "智能助手 App", Color: "#10b981",
				Versions: []Version{
					{ID: "v-1-1", Label: "V1.0 灯塔版", Time: 30, Features: []string{"核心语义理解", "多轮对话引擎"}},
					{ID: "v-1-2", Label: "V1.5 专业版", Time: 180, Features: []string{"知识库深度检索", "插件化架构"}},
					{ID: "v-1-3", Label: "V2.0 旗舰版", Time: 300, Features: []string{"跨端实时同步", "企业安全大脑"}},
				},
			},
			{
				ID: "prod-2", Name: "云端协作工作台", Color: "#059669",
				Versions: []Version{
					{ID: "v-2-1", Label: "预览版 0.8", Time: 90, Features: []string{"实时协作基座", "基础看板配置"}},
					{ID: "v-2-2", Label: "正式版 1.2", Time: 240, Features: []string{"自动化工作流", "深度集成生态"}},
				},
			},
		},
		Feedbacks: []Feedback{
			{ID: "f-1", VersionID: "v-1-1", ProjectID: "proj-1", SubProjectID: "sub-1-1", Scope: "鉴权插件 SDK", Quality: QualitySOP, Date: "2026-03-15"},
			{ID: "f-2", VersionID: "v-2-1", ProjectID: "proj-1", SubProjectID: "sub-1-2", Scope: "多租户架构模板", Quality: QualityPOC, Date: "2026-05-18"},
			{ID: "f-3", VersionID: "v-1-2", ProjectID: "proj-2", SubProjectID: "sub-2-1", Scope: "NLP 逻辑接口", Quality: QualitySOP, Date: "2026-08-05"},
			{ID: "f-4", VersionID: "v-2-2", ProjectID: "proj-2", Scope: "动态扩容脚本", Quality: QualitySOP, Date: "2026-10-12"},
			{ID: "f-5", VersionID: "v-1-3", ProjectID: "proj-3", Scope: "GDPR 审计框架", Quality: QualitySOP, Date: "2027-01-25"},
		},
	}
}
